package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the smallest secret accepted for HMAC signing. 32 bytes
// matches the HS256 block recommendation from RFC 7518 §3.2.
const MinSecretLen = 32

// Signer is anything that can mint signed JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HMACSigner signs tokens with a shared secret using HS256, HS384 or HS512.
type HMACSigner struct {
	method *jwt.SigningMethodHMAC
	secret []byte
}

// NewHMACSigner builds a signer for the named algorithm. The secret must be
// at least MinSecretLen bytes.
func NewHMACSigner(alg string, secret []byte) (*HMACSigner, error) {
	method, err := hmacMethod(alg)
	if err != nil {
		return nil, err
	}
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("jwtx: secret too short: %d bytes, want at least %d", len(secret), MinSecretLen)
	}

	return &HMACSigner{method: method, secret: secret}, nil
}

func (s *HMACSigner) Alg() string { return s.method.Alg() }

// Sign serializes claims into a compact signed JWT string.
func (s *HMACSigner) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

func hmacMethod(alg string) (*jwt.SigningMethodHMAC, error) {
	switch alg {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q, want HS256, HS384 or HS512", alg)
	}
}
