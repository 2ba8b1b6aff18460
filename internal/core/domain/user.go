package domain

import "time"

// Role is the single role held by a user. ADMIN and USER are the roles the
// access policy knows about; any other value is carried through unchanged and
// simply matches no policy entry.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Known reports whether r is one of the built-in roles.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string { return string(r) }

// User models a credential record in the store.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the authenticated principal behind a request.
type Identity struct {
	Subject string
	Role    Role
}
