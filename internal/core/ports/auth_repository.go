package ports

import (
	"context"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePasswordHash replaces the stored hash for username.
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
}
