package identity

import (
	"regexp"
	"strings"

	"github.com/ayustore/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's authorization role
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a store account. A user authenticates with a password,
// a linked Google identity, or both; an account with neither is invalid.
type User struct {
	shared.BaseEntity
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	GoogleID     string
	Avatar       string
	Role         Role
}

// NewUser creates a password-authenticated user
func NewUser(email, name, password string) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         RoleUser,
	}, nil
}

// NewGoogleUser creates a federated user without a password
func NewGoogleUser(email, name, googleID, avatar string) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if googleID == "" {
		return nil, shared.NewDomainError("INVALID_GOOGLE_ID", "Google ID cannot be empty")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Name:       strings.TrimSpace(name),
		GoogleID:   googleID,
		Avatar:     avatar,
		Role:       RoleUser,
	}, nil
}

// HasPassword reports whether the account supports password login
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	if !u.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// LinkGoogle attaches a Google identity to an existing account
func (u *User) LinkGoogle(googleID, avatar string) error {
	if googleID == "" {
		return shared.NewDomainError("INVALID_GOOGLE_ID", "Google ID cannot be empty")
	}
	u.GoogleID = googleID
	if avatar != "" {
		u.Avatar = avatar
	}
	u.Touch()
	return nil
}

// UpdateProfile refreshes name and avatar from a federated login
func (u *User) UpdateProfile(name, avatar string) {
	if name != "" {
		u.Name = strings.TrimSpace(name)
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	u.Touch()
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+role.String())
	}
	u.Role = role
	u.Touch()
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	return nil
}
