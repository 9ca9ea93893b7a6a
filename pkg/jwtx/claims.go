// Package jwtx wraps golang-jwt with the claim set and the symmetric
// signing/verification helpers used across the service.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes carried in the "use" claim.
const (
	// UseAccess marks a bearer token minted at login.
	UseAccess = "access"
	// UseRecovery marks a short-lived token mailed out for password resets.
	UseRecovery = "recovery"
)

// Claims is the claim set for every token the service mints.
type Claims struct {
	jwt.RegisteredClaims

	// Use marks what the token is good for, so a password-recovery token
	// can never be presented as an access token or vice versa.
	Use string `json:"use,omitempty"`
}

// NewClaims builds a claim set for subject that is valid from now until
// now+ttl. A zero or negative ttl yields an already-expired token.
func NewClaims(issuer, subject, use string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Use: use,
	}
}

// ValidateIssuer checks the iss claim against expected. Empty expected means
// nothing to enforce.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateUse checks the use claim against expected. Empty expected means
// nothing to enforce.
func (c *Claims) ValidateUse(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Use != expected {
		return ErrInvalidClaim
	}
	return nil
}

// ValidateExpiry ensures the token has not expired (exp) and is not being
// used before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway is ValidateExpiry with a grace period for clock
// skew between the issuing and verifying hosts.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
