package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
	"github.com/tempsense/tracking-api/internal/pkg/password"
)

const defaultTokenTTL = 24 * time.Hour

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(subject string, role domain.Role, ttl time.Duration) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
	VerifyNone(plain string)
}

// AuthService implements login and password change.
type AuthService struct {
	repo     ports.UserRepository
	issuer   TokenIssuer
	hasher   PasswordHasher
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer TokenIssuer, hasher PasswordHasher, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, issuer: issuer, hasher: hasher, tokenTTL: tokenTTL, log: log}
}

// Login verifies the credentials and issues a token. An unknown username and
// a wrong password both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role.String()).Msg("login succeeded")

	return &ports.LoginResult{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
		TTL:      s.tokenTTL,
	}, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
// Tokens issued earlier stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	user, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !s.hasher.Verify(user.PasswordHash, in.CurrentPassword) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if password.IsTooLong(err) {
		return domain.ErrPasswordTooLong
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.Username, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("password changed")
	return nil
}

func (s *AuthService) verify(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.VerifyNone(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// EnsureUser creates username with role and password if it does not exist.
// It reports whether a user was created.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string, role domain.Role) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("ensure user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("ensure user: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ensure user: %w", err)
	}

	s.log.Info().Str("username", username).Str("role", role.String()).Msg("bootstrap user created")
	return true, nil
}
