package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/portside-dev/portside/internal/api/mail"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/cryptox"
	"github.com/portside-dev/portside/pkg/slogx"
)

// RecoveryService drives the forgot-password flow: it mails out recovery
// tokens and consumes them to set a new password.
type RecoveryService struct {
	Tokens      *TokenService
	Store       store.Store
	Mailer      mail.Mailer
	ProjectName string
	FrontendURL string
}

// RequestPasswordRecovery mails a recovery token to the account, if one
// exists. Unknown and deactivated emails complete without error so the
// endpoint cannot be used to probe which addresses are registered.
func (s *RecoveryService) RequestPasswordRecovery(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	email = NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password recovery requested for unknown email")
			return nil
		}
		return err
	}
	if !user.Active {
		l.Info("password recovery requested for deactivated account", "user_id", user.ID)
		return nil
	}

	token, err := s.Tokens.IssueRecovery(user.ID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.FrontendURL, "/"), token)
	msg := mail.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("%s - password recovery", s.ProjectName),
		Body: fmt.Sprintf(
			"A password reset was requested for your %s account.\n\n"+
				"Open the link below to choose a new password:\n\n%s\n\n"+
				"The link expires in %s. If you did not request this, ignore this email.\n",
			s.ProjectName, link, s.Tokens.RecoveryTTL,
		),
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return err
	}

	l.Info("password recovery mail sent", "user_id", user.ID)
	return nil
}

// ResetPassword consumes a recovery token and sets the account's password.
func (s *RecoveryService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.Tokens.AuthenticateRecovery(ctx, token)
	if err != nil {
		return err
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset via recovery token", "user_id", user.ID)
	return nil
}
