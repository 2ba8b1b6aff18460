package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/token"
)

// TokenDecoder verifies identity tokens.
type TokenDecoder interface {
	Decode(tokenStr string) (*token.Decoded, error)
}

// SubjectLookup confirms a token subject still exists in the credential store.
type SubjectLookup interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AccessGuard authenticates bearer tokens and enforces domain.AccessPolicy.
type AccessGuard struct {
	decoder  TokenDecoder
	subjects SubjectLookup
	log      zerolog.Logger
}

// NewAccessGuard returns an AccessGuard. subjects may be nil, in which case
// only the token itself is checked.
func NewAccessGuard(decoder TokenDecoder, subjects SubjectLookup, log zerolog.Logger) *AccessGuard {
	return &AccessGuard{decoder: decoder, subjects: subjects, log: log}
}

// Authenticate decodes token into an identity. Every failure wraps
// domain.ErrUnauthenticated together with its specific cause.
func (g *AccessGuard) Authenticate(ctx context.Context, tokenStr string) (domain.Identity, error) {
	decoded, err := g.decoder.Decode(tokenStr)
	if err != nil {
		return domain.Identity{}, g.reject(err, "")
	}
	if decoded.Subject == "" {
		return domain.Identity{}, g.reject(domain.ErrUnknownSubject, "")
	}

	if g.subjects != nil {
		user, err := g.subjects.FindByUsername(ctx, decoded.Subject)
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, g.reject(domain.ErrUnknownSubject, decoded.Subject)
		}
		if err != nil {
			return domain.Identity{}, fmt.Errorf("authenticate: %w", err)
		}
		if user.Username != decoded.Subject {
			return domain.Identity{}, g.reject(domain.ErrUnknownSubject, decoded.Subject)
		}
	}

	return domain.Identity{Subject: decoded.Subject, Role: decoded.Role}, nil
}

// Authorize fails with domain.ErrForbidden unless identity.Role is allowed
// to perform op. Operations missing from the policy are always forbidden.
func (g *AccessGuard) Authorize(identity domain.Identity, op domain.Operation) error {
	roles, ok := domain.RolesFor(op)
	if !ok {
		return domain.ErrForbidden
	}
	return RequireRole(identity, roles...)
}

// RequireRole fails with domain.ErrForbidden unless identity.Role is one of
// roles. No roles means any authenticated identity.
func RequireRole(identity domain.Identity, roles ...domain.Role) error {
	if identity.Subject == "" {
		return domain.ErrUnauthenticated
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if identity.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

func (g *AccessGuard) reject(cause error, subject string) error {
	g.log.Warn().Str("reason", RejectionReason(cause)).Str("subject", subject).Msg("token rejected")
	return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, cause)
}

// RejectionReason gives a short label for a token failure, for logs and metrics.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrUnknownSubject):
		return "unknown_subject"
	default:
		return "other"
	}
}
