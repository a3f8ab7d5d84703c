package identity

import (
	"context"
	"errors"

	"github.com/ayustore/backend/internal/domain/identity"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles account queries
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Get returns a user's profile
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ListAll returns every user, newest first
func (s *UserService) ListAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// CountAll returns the total number of users for the dashboard
func (s *UserService) CountAll(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// EnsureAdmin guarantees an admin account exists for the given email.
// An existing account is promoted to admin; otherwise a new password
// account is created with the admin role.
func (s *UserService) EnsureAdmin(ctx context.Context, email, name, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if user.Role == identity.RoleAdmin {
			return nil
		}
		if err := user.SetRole(identity.RoleAdmin); err != nil {
			return err
		}
		return s.userRepo.Update(ctx, user)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err = identity.NewUser(email, name, password)
	if err != nil {
		return err
	}
	if err := user.SetRole(identity.RoleAdmin); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Lost a race against a concurrent bootstrap
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}
