package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ayustore/backend/internal/infrastructure/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Errors for configuration validation
var (
	ErrGoogleMissingClientID     = errors.New("google: missing client ID")
	ErrGoogleMissingClientSecret = errors.New("google: missing client secret")
)

// Profile is the subset of the Google userinfo response the store needs
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleClient drives the Google OAuth2 authorization-code flow
type GoogleClient struct {
	config      *oauth2.Config
	userInfoURL string
}

// GoogleClientOption is a functional option for configuring the client
type GoogleClientOption func(*GoogleClient)

// WithUserInfoURL overrides the userinfo endpoint, used in tests
func WithUserInfoURL(url string) GoogleClientOption {
	return func(c *GoogleClient) {
		c.userInfoURL = url
	}
}

// NewGoogleClient creates a new Google OAuth2 client
func NewGoogleClient(cfg config.GoogleOAuthConfig, opts ...GoogleClientOption) (*GoogleClient, error) {
	if cfg.ClientID == "" {
		return nil, ErrGoogleMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrGoogleMissingClientSecret
	}

	client := &GoogleClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// AuthURL returns the Google consent page URL for the given state
func (c *GoogleClient) AuthURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for a token
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: code exchange failed: %w", err)
	}
	return token, nil
}

// FetchProfile retrieves the authenticated user's profile
func (c *GoogleClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	httpClient := c.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: failed to build userinfo request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google: failed to read userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: userinfo returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("google: failed to parse userinfo response: %w", err)
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, fmt.Errorf("google: userinfo response missing id or email")
	}

	return &profile, nil
}
