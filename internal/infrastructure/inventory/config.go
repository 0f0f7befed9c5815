package inventory

import "errors"

// Config holds configuration for the external store API holding the
// inventory of record
type Config struct {
	// BaseURL is the store's REST API root, e.g. "https://shop.example.com/api/v3"
	BaseURL string
	// APIKey is the consumer key for basic auth
	APIKey string
	// APISecret is the consumer secret for basic auth
	APISecret string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for store API configuration
var (
	ErrConfigMissingBaseURL = errors.New("inventory: base URL is required")
	ErrConfigMissingAPIKey  = errors.New("inventory: API key is required")
	ErrConfigMissingSecret  = errors.New("inventory: API secret is required")
)

// Validate validates the store API configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.APISecret == "" {
		return ErrConfigMissingSecret
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	return nil
}
