package payment

import "errors"

const defaultRazorpayBaseURL = "https://api.razorpay.com"

// RazorpayConfig contains configuration for the Razorpay Orders API
type RazorpayConfig struct {
	// KeyID is the public API key, also handed to frontend checkout
	KeyID string
	// KeySecret is the private API key used for basic auth and
	// signature verification
	KeySecret string
	// BaseURL overrides the API endpoint, used in tests
	BaseURL string
}

// Errors for configuration validation
var (
	ErrRazorpayMissingKeyID     = errors.New("razorpay: missing key ID")
	ErrRazorpayMissingKeySecret = errors.New("razorpay: missing key secret")
)

// Validate validates the configuration
func (c *RazorpayConfig) Validate() error {
	if c.KeyID == "" {
		return ErrRazorpayMissingKeyID
	}
	if c.KeySecret == "" {
		return ErrRazorpayMissingKeySecret
	}
	return nil
}

func (c *RazorpayConfig) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultRazorpayBaseURL
}
