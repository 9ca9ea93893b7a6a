package app

import (
	"fmt"
	"log/slog"

	"github.com/portside-dev/portside/pkg/cryptox"
	"github.com/portside-dev/portside/pkg/jwtx"
)

// InitTokenSecret builds the HMAC signer and verifier pair from the configured
// secret.
//
// With no API_SECRET configured, a random secret is generated on startup and
// held only in memory. All existing tokens become invalid when the service
// restarts, so production deployments should always configure a secret.
//
// Supported algorithms: HS256, HS384, HS512
func InitTokenSecret(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		generated, err := cryptox.GenerateToken(jwtx.MinSecretLen)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		secret = []byte(generated)
		logger.Warn("no token secret configured, generated an ephemeral one; all tokens become invalid on restart")
	}

	signer, err := jwtx.NewHMACSigner(cfg.Algorithm, secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}

	verifier, err := jwtx.NewHMACVerifier(cfg.Algorithm, secret, jwtx.VerifyOptions{
		Issuer: cfg.Issuer,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	logger.Info("token signing initialized",
		"algorithm", cfg.Algorithm,
		"issuer", cfg.Issuer,
		"access_ttl", cfg.AccessTTL,
	)

	return signer, verifier, nil
}
