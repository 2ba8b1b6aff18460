package ports

import (
	"context"
	"time"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string
	Username string
	Role     domain.Role
	TTL      time.Duration
}

// ChangePasswordInput carries the authenticated subject and both passwords.
type ChangePasswordInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}

// AccessGuard turns a bearer token into an identity and checks it against
// the access policy.
type AccessGuard interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
	Authorize(identity domain.Identity, op domain.Operation) error
}
