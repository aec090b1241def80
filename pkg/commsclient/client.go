package commsclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/fivetwenty-io/comms-client/internal/client"
	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")

	ErrPrivateKeyUnreadable = constants.ErrPrivateKeyUnreadable
	ErrInvalidBaseURL       = constants.ErrInvalidBaseURL
)

// New creates a new communications API client. The caller's config is not
// modified.
func New(ctx context.Context, config *comms.Config) (api.Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	normalized := *config

	var err error

	normalized.APIBaseURL, err = normalizeBaseURL(config.APIBaseURL, comms.DefaultAPIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("API base URL: %w", err)
	}

	normalized.RESTBaseURL, err = normalizeBaseURL(config.RESTBaseURL, comms.DefaultRESTBaseURL)
	if err != nil {
		return nil, fmt.Errorf("REST base URL: %w", err)
	}

	if len(normalized.PrivateKey) == 0 && normalized.PrivateKeyPath != "" {
		key, err := os.ReadFile(normalized.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPrivateKeyUnreadable, err)
		}

		normalized.PrivateKey = key
	}

	if normalized.HTTPTimeout == 0 {
		normalized.HTTPTimeout = constants.DefaultHTTPTimeout
	}

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithToken creates a client that authenticates with a static bearer token.
func NewWithToken(ctx context.Context, accessToken string) (api.Client, error) {
	return New(ctx, &comms.Config{AccessToken: accessToken})
}

// NewWithKeySecret creates a client that authenticates with an API key and secret.
func NewWithKeySecret(ctx context.Context, apiKey, apiSecret string) (api.Client, error) {
	return New(ctx, &comms.Config{APIKey: apiKey, APISecret: apiSecret})
}

// NewWithApplication creates a client that mints application tokens from a
// PEM encoded private key.
func NewWithApplication(ctx context.Context, applicationID string, privateKey []byte) (api.Client, error) {
	return New(ctx, &comms.Config{ApplicationID: applicationID, PrivateKey: privateKey})
}

// normalizeBaseURL applies the default, adds a missing https scheme and
// trims trailing slashes.
func normalizeBaseURL(raw, fallback string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	raw = strings.TrimRight(raw, "/")

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}

	return raw, nil
}
