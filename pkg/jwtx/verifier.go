package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures the expectations a verifier enforces beyond the
// signature itself.
type VerifyOptions struct {
	// Issuer the token must carry (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf. Zero means
	// exact.
	Leeway time.Duration
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HMACVerifier validates tokens signed by an HMACSigner sharing the same
// secret and algorithm.
type HMACVerifier struct {
	method *jwt.SigningMethodHMAC
	secret []byte
	opts   VerifyOptions
}

// NewHMACVerifier builds a verifier for the named algorithm. Tokens signed
// under any other algorithm fail with ErrAlgMismatch, which also shuts the
// door on alg-confusion tricks like "none".
func NewHMACVerifier(alg string, secret []byte, opts VerifyOptions) (*HMACVerifier, error) {
	method, err := hmacMethod(alg)
	if err != nil {
		return nil, err
	}

	return &HMACVerifier{method: method, secret: secret, opts: opts}, nil
}

// Verify checks the signature and the claim expectations and returns the
// parsed claims. Failures map onto the package sentinel errors.
func (v *HMACVerifier) Verify(tokenStr string) (Claims, error) {
	// Claims validation is done explicitly below so expiry and issuer
	// failures surface as distinct sentinels rather than one parse error.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != v.method.Alg() {
			return nil, ErrAlgMismatch
		}
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, classifyParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(v.opts.Leeway); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}
