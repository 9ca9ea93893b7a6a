package service

import (
	"context"
	"errors"
	"time"

	"github.com/portside-dev/portside/internal/api/domain"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/pkg/jwtx"
	"github.com/portside-dev/portside/pkg/slogx"
)

var (
	ErrInvalidToken      = errors.New("invalid_token")
	ErrTokenExpired      = errors.New("token_expired")
	ErrPrincipalNotFound = errors.New("principal_not_found")
)

// TokenService issues and authenticates the bearer tokens the API runs on.
// Tokens are stateless signed JWTs; there is no server-side session row, so
// authentication is a signature check plus a live lookup of the subject.
type TokenService struct {
	Signer      jwtx.Signer
	Verifier    jwtx.Verifier
	Store       store.Store
	Issuer      string
	AccessTTL   time.Duration
	RecoveryTTL time.Duration
}

// IssueAccess mints a bearer token for the user with the configured lifetime.
func (s *TokenService) IssueAccess(userID string) (string, error) {
	return s.Issue(userID, s.AccessTTL)
}

// Issue mints a bearer token with an explicit lifetime. The ttl is applied
// as given: a zero or negative ttl produces a token that is already expired.
func (s *TokenService) Issue(userID string, ttl time.Duration) (string, error) {
	claims := jwtx.NewClaims(s.Issuer, userID, jwtx.UseAccess, ttl, time.Now())
	return s.Signer.Sign(claims)
}

// IssueRecovery mints a short-lived password recovery token. Recovery tokens
// carry a distinct use claim so they are rejected as bearer tokens.
func (s *TokenService) IssueRecovery(userID string) (string, error) {
	claims := jwtx.NewClaims(s.Issuer, userID, jwtx.UseRecovery, s.RecoveryTTL, time.Now())
	return s.Signer.Sign(claims)
}

// Authenticate resolves a bearer token to its live user.
//
// The token must carry a valid signature, be within its validity window, and
// reference a subject that still exists and is active. Signature problems and
// malformed tokens yield ErrInvalidToken, expiry yields ErrTokenExpired, and
// a missing or deactivated subject yields ErrPrincipalNotFound. The signature
// is checked before expiry, so an expired token with a bad signature reports
// ErrInvalidToken.
func (s *TokenService) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	return s.authenticate(ctx, tokenString, jwtx.UseAccess)
}

// AuthenticateRecovery resolves a password recovery token to its live user.
func (s *TokenService) AuthenticateRecovery(ctx context.Context, tokenString string) (domain.User, error) {
	return s.authenticate(ctx, tokenString, jwtx.UseRecovery)
}

func (s *TokenService) authenticate(ctx context.Context, tokenString, use string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(tokenString)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.User{}, ErrTokenExpired
		}
		return domain.User{}, ErrInvalidToken
	}

	if err := claims.ValidateUse(use); err != nil {
		l.Info("token presented with wrong use claim", "want", use, "got", claims.Use)
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrPrincipalNotFound
		}
		return domain.User{}, err
	}

	if !user.Active {
		return domain.User{}, ErrPrincipalNotFound
	}

	return user, nil
}
