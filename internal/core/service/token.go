package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// TokenConfig is the process-wide signing configuration. It is read once at
// startup and never mutated afterwards.
type TokenConfig struct {
	Secret    string
	Algorithm string // HS256 (default), HS384, or HS512
	TTL       time.Duration
}

// TokenCodec issues and verifies HMAC-signed bearer tokens carrying a
// subject and an expiration.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenCodec validates the configuration and returns an immutable codec.
func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token codec: signing secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	switch alg {
	case jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg():
	default:
		return nil, fmt.Errorf("token codec: unsupported signing algorithm %q", alg)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{
		secret: []byte(cfg.Secret),
		method: jwt.GetSigningMethod(alg),
		ttl:    ttl,
	}, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the subject with the configured TTL and returns it
// together with the TTL in seconds for client display.
func (c *TokenCodec) Issue(subject string) (string, int, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return token, int(c.ttl.Seconds()), nil
}

// Decode verifies signature and expiration and returns the subject. Every
// failure mode collapses to domain.ErrInvalidToken so callers cannot tell
// which check rejected the token.
func (c *TokenCodec) Decode(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
