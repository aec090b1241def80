package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

func TestAccountClient_GetBalance(t *testing.T) {
	t.Parallel()

	tests := []TestOperation[*api.Balance]{
		{
			Name:           "balance",
			ExpectedMethod: http.MethodGet,
			ExpectedPath:   "/account/get-balance",
			ExpectedQuery:  map[string][]string{},
			CheckRequest: func(t *testing.T, request *http.Request) {
				t.Helper()

				key, secret, ok := request.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "test-key", key)
				assert.Equal(t, "test-secret", secret)
			},
			StatusCode: http.StatusOK,
			Response:   `{"value": 10.28, "autoReload": false}`,
			CheckResponse: func(t *testing.T, result *api.Balance) {
				t.Helper()
				assert.InDelta(t, 10.28, result.Value, 0.0001)
				assert.False(t, result.AutoReload)
			},
		},
		{
			Name:           "legacy error body",
			ExpectedMethod: http.MethodGet,
			ExpectedPath:   "/account/get-balance",
			StatusCode:     http.StatusUnauthorized,
			Response:       `{"error-code": "401", "error-code-label": "authentication failed"}`,
			WantErr:        true,
			ErrIs:          comms.ErrUnauthorized,
		},
	}

	RunOperationTests(t, tests, func(ctx context.Context, client *Client) (*api.Balance, error) {
		return client.Account().GetBalance(ctx)
	})
}

func TestAccountClient_LegacyErrorFields(t *testing.T) {
	t.Parallel()

	server, _ := countingServer(t, http.StatusUnauthorized)

	_, err := NewTestClient(t, server.URL).Account().GetBalance(context.Background())

	var apiErr *comms.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, comms.ErrorFamilyLegacy, apiErr.Family)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAccountClient_RequiresKeyAndSecret(t *testing.T) {
	t.Parallel()

	server, requests := countingServer(t, http.StatusOK)

	client := NewTestClient(t, server.URL, func(config *comms.Config) {
		config.APISecret = ""
	})

	_, err := client.Account().GetBalance(context.Background())
	require.ErrorIs(t, err, comms.ErrNoUsableCredential)
	assert.Equal(t, int32(0), requests.Load())
}
