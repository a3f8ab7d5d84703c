package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByGoogleID finds a user by linked Google identity
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)

	// FindAll returns all users
	FindAll(ctx context.Context) ([]User, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)

	// Save persists a new user
	Save(ctx context.Context, user *User) error

	// Update persists changes to an existing user
	Update(ctx context.Context, user *User) error
}

// Principal identifies the authenticated caller of a request.
// It is established by the HTTP layer from JWT claims and passed
// explicitly into services.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
