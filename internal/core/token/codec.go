// Package token issues and decodes the signed, time-bound bearer tokens that
// carry a user's identity between requests. Tokens are HS256 JWTs and hold no
// server-side state: validity is decided by signature and expiry alone.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// MinSecretLength is the shortest signing secret accepted by NewCodec.
const MinSecretLength = 32

// Claims is the token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decoded is the identity recovered from a valid token.
type Decoded struct {
	Subject   string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies tokens with a single secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec signing with secret.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token: signing secret must be at least %d bytes", MinSecretLength)
	}
	c := &Codec{secret: append([]byte(nil), secret...), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue returns a signed token for subject and role valid for ttl. Every call
// carries a fresh jti, so no two issuances produce the same token.
//
// exp is carried in whole seconds and is rounded up, so a token never
// expires before ttl has elapsed.
func (c *Codec) Issue(subject string, role domain.Role, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(ttl))),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies tokenStr and returns its identity. The signature is always
// checked before expiry, so an expired result implies an authentic token.
func (c *Codec) Decode(tokenStr string) (*Decoded, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, domain.ErrMalformedToken
	}
	// Non-canonical signature encodings would decode to the same bytes; treat
	// any altered signature segment as a signature failure.
	if _, err := base64.RawURLEncoding.Strict().DecodeString(parts[2]); err != nil || parts[2] == "" {
		return nil, domain.ErrInvalidSignature
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
		// jwt rejects now >= exp; expiresAt itself is still valid.
		jwt.WithLeeway(time.Nanosecond),
	)
	if err != nil {
		return nil, classify(err)
	}

	d := &Decoded{
		Subject:   claims.Subject,
		Role:      domain.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		d.IssuedAt = claims.IssuedAt.Time
	}
	return d, nil
}

func ceilSecond(t time.Time) time.Time {
	if floor := t.Truncate(time.Second); !floor.Equal(t) {
		return floor.Add(time.Second)
	}
	return t
}

func (c *Codec) keyFunc(_ *jwt.Token) (any, error) {
	return c.secret, nil
}

// classify maps jwt parser errors onto the domain token errors.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		// Missing exp, iat in the future and similar claim problems.
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
}
