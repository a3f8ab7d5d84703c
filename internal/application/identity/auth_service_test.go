package identity

import (
	"context"
	"testing"
	"time"

	"github.com/ayustore/backend/internal/domain/identity"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/auth"
	"github.com/ayustore/backend/internal/infrastructure/config"
	"github.com/ayustore/backend/internal/infrastructure/oauth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/oauth2"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*identity.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockGoogleProvider is a mock implementation of GoogleProvider
type MockGoogleProvider struct {
	mock.Mock
}

func (m *MockGoogleProvider) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockGoogleProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*oauth.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.Profile), args.Error(1)
}

func newAuthService(t *testing.T, repo *MockUserRepository, google *MockGoogleProvider) *AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-with-enough-length",
		TokenExpiration: time.Hour,
		Issuer:          "ayustore-backend",
	})
	return NewAuthService(repo, jwtService, google, zaptest.NewLogger(t))
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an account and issues a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(t, repo, new(MockGoogleProvider))

		repo.On("FindByEmail", ctx, "asha@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(ctx, RegisterRequest{
			Email:    "Asha@Example.com",
			Name:     "Asha Rao",
			Password: "correct horse battery",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "asha@example.com", resp.User.Email)
		assert.Equal(t, string(identity.RoleUser), resp.User.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(t, repo, new(MockGoogleProvider))

		existing, err := identity.NewUser("asha@example.com", "Asha Rao", "correct horse battery")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(existing, nil)

		_, err = svc.Register(ctx, RegisterRequest{
			Email:    "asha@example.com",
			Name:     "Asha Rao",
			Password: "correct horse battery",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("duplicate detected at save is refused", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(t, repo, new(MockGoogleProvider))

		repo.On("FindByEmail", ctx, "asha@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(shared.ErrAlreadyExists)

		_, err := svc.Register(ctx, RegisterRequest{
			Email:    "asha@example.com",
			Name:     "Asha Rao",
			Password: "correct horse battery",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(t, repo, new(MockGoogleProvider))

		user, err := identity.NewUser("asha@example.com", "Asha Rao", "correct horse battery")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)

		resp, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "correct horse battery"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
	})

	t.Run("unknown email and wrong password return the same error", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(t, repo, new(MockGoogleProvider))

		user, err := identity.NewUser("asha@example.com", "Asha Rao", "correct horse battery")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)
		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, wrongPassword := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong"})
		_, unknownEmail := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})

		assert.ErrorIs(t, wrongPassword, shared.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, shared.ErrInvalidCredentials)
	})

	t.Run("federated-only account is pointed at google sign-in", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(t, repo, new(MockGoogleProvider))

		user, err := identity.NewGoogleUser("asha@example.com", "Asha Rao", "google-123", "")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "asha@example.com").Return(user, nil)

		_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "anything"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_GoogleCallback(t *testing.T) {
	ctx := context.Background()

	profile := &oauth.Profile{
		ID:      "google-123",
		Email:   "asha@example.com",
		Name:    "Asha Rao",
		Picture: "https://example.com/avatar.png",
	}
	token := &oauth2.Token{AccessToken: "ya29.test"}

	t.Run("already linked account signs in", func(t *testing.T) {
		repo := new(MockUserRepository)
		google := new(MockGoogleProvider)
		svc := newAuthService(t, repo, google)

		user, err := identity.NewGoogleUser(profile.Email, profile.Name, profile.ID, profile.Picture)
		require.NoError(t, err)

		google.On("Exchange", ctx, "auth-code").Return(token, nil)
		google.On("FetchProfile", ctx, token).Return(profile, nil)
		repo.On("FindByGoogleID", ctx, "google-123").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		resp, err := svc.GoogleCallback(ctx, "auth-code")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("existing password account gets linked by email", func(t *testing.T) {
		repo := new(MockUserRepository)
		google := new(MockGoogleProvider)
		svc := newAuthService(t, repo, google)

		user, err := identity.NewUser(profile.Email, profile.Name, "correct horse battery")
		require.NoError(t, err)

		google.On("Exchange", ctx, "auth-code").Return(token, nil)
		google.On("FetchProfile", ctx, token).Return(profile, nil)
		repo.On("FindByGoogleID", ctx, "google-123").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, profile.Email).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		_, err = svc.GoogleCallback(ctx, "auth-code")
		require.NoError(t, err)
		assert.Equal(t, "google-123", user.GoogleID)
		assert.True(t, user.HasPassword())
		repo.AssertExpectations(t)
	})

	t.Run("new federated user is created", func(t *testing.T) {
		repo := new(MockUserRepository)
		google := new(MockGoogleProvider)
		svc := newAuthService(t, repo, google)

		google.On("Exchange", ctx, "auth-code").Return(token, nil)
		google.On("FetchProfile", ctx, token).Return(profile, nil)
		repo.On("FindByGoogleID", ctx, "google-123").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, profile.Email).Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.GoogleID == "google-123" && u.Email == profile.Email && !u.HasPassword()
		})).Return(nil)

		resp, err := svc.GoogleCallback(ctx, "auth-code")
		require.NoError(t, err)
		assert.Equal(t, profile.Email, resp.User.Email)
		repo.AssertExpectations(t)
	})

	t.Run("exchange failure is an authentication error", func(t *testing.T) {
		repo := new(MockUserRepository)
		google := new(MockGoogleProvider)
		svc := newAuthService(t, repo, google)

		google.On("Exchange", ctx, "bad-code").Return(nil, assert.AnError)

		_, err := svc.GoogleCallback(ctx, "bad-code")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}
