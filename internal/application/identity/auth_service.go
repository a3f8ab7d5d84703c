package identity

import (
	"context"
	"errors"

	"github.com/ayustore/backend/internal/domain/identity"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/auth"
	"github.com/ayustore/backend/internal/infrastructure/oauth"
	"github.com/ayustore/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// errGoogleNotConfigured is returned when the Google endpoints are hit
// without OAuth credentials configured
var errGoogleNotConfigured = shared.NewDomainError("NOT_FOUND", "Google sign-in is not enabled")

// GoogleProvider abstracts the Google OAuth2 flow for the auth service
type GoogleProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*oauth.Profile, error)
}

// AuthService handles registration, login and the Google OAuth flow
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	google     GoogleProvider
	logger     *zap.Logger
	metrics    *telemetry.StoreMetrics
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	google GoogleProvider,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		google:     google,
		logger:     logger,
	}
}

// SetStoreMetrics sets the business metrics collector
func (s *AuthService) SetStoreMetrics(m *telemetry.StoreMetrics) {
	s.metrics = m
}

// Register creates a password account and issues a token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	if s.metrics != nil {
		s.metrics.RecordSignup(ctx, telemetry.SignupMethodPassword)
	}
	return s.issueToken(user)
}

// Login authenticates a password account. Unknown emails and wrong
// passwords return the same error; federated-only accounts are pointed
// at Google sign-in.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "This account uses Google sign-in")
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GoogleAuthURL returns the consent page URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", errGoogleNotConfigured
	}
	return s.google.AuthURL(state), nil
}

// GoogleCallback finishes the OAuth flow: exchanges the code, fetches the
// profile, and resolves the account by google id, then by email, then by
// creating a new user.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*AuthResponse, error) {
	if s.google == nil {
		return nil, errGoogleNotConfigured
	}

	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Google sign-in failed")
	}

	profile, err := s.google.FetchProfile(ctx, token)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Google sign-in failed")
	}

	user, err := s.resolveGoogleUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) resolveGoogleUser(ctx context.Context, profile *oauth.Profile) (*identity.User, error) {
	// Already linked
	user, err := s.userRepo.FindByGoogleID(ctx, profile.ID)
	if err == nil {
		user.UpdateProfile(profile.Name, profile.Picture)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// Existing password account with the same email gets linked
	user, err = s.userRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		if err := user.LinkGoogle(profile.ID, profile.Picture); err != nil {
			return nil, err
		}
		user.UpdateProfile(profile.Name, "")
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("linked google identity", zap.String("user_id", user.ID.String()))
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	// Brand new federated account
	user, err = identity.NewGoogleUser(profile.Email, profile.Name, profile.ID, profile.Picture)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered via google", zap.String("user_id", user.ID.String()))
	if s.metrics != nil {
		s.metrics.RecordSignup(ctx, telemetry.SignupMethodGoogle)
	}
	return user, nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwtService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      *ToUserResponse(user),
	}, nil
}
