package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// NewTestClient creates a client whose API and REST hosts both point at
// baseURL. It holds a static bearer token, an API key and secret, and a
// signature secret unless modify removes them.
func NewTestClient(t *testing.T, baseURL string, modify ...func(*comms.Config)) *Client {
	t.Helper()

	config := &comms.Config{
		APIBaseURL:      baseURL,
		RESTBaseURL:     baseURL,
		APIKey:          "test-key",
		APISecret:       "test-secret",
		SignatureSecret: "test-signature-secret",
		AccessToken:     "test-token",
	}

	for _, fn := range modify {
		fn(config)
	}

	client, err := New(context.Background(), config)
	require.NoError(t, err)

	return client
}

// TestOperation represents a generic operation test case.
type TestOperation[TResponse any] struct {
	Name           string
	ExpectedMethod string
	ExpectedPath   string
	// ExpectedQuery, when non-nil, must equal the received query exactly.
	ExpectedQuery map[string][]string
	// ExpectedBody, when set, must be JSON-equal to the received body.
	ExpectedBody  string
	CheckRequest  func(t *testing.T, request *http.Request)
	StatusCode    int
	Response      string
	WantErr       bool
	ErrIs         error
	CheckResponse func(t *testing.T, result TResponse)
}

// RunOperationTests runs each case against its own server and asserts a
// single request reached it.
func RunOperationTests[TResponse any](
	t *testing.T,
	tests []TestOperation[TResponse],
	call func(ctx context.Context, client *Client) (TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			var requests atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				requests.Add(1)

				assert.Equal(t, testCase.ExpectedMethod, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.EscapedPath())

				if testCase.ExpectedQuery != nil {
					assert.Equal(t, testCase.ExpectedQuery, map[string][]string(request.URL.Query()))
				}

				body, err := io.ReadAll(request.Body)
				assert.NoError(t, err)

				if testCase.ExpectedBody != "" {
					assert.JSONEq(t, testCase.ExpectedBody, string(body))
				}

				if testCase.CheckRequest != nil {
					testCase.CheckRequest(t, request)
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.Response != "" {
					_, _ = writer.Write([]byte(testCase.Response))
				}
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			result, err := call(context.Background(), client)

			assert.Equal(t, int32(1), requests.Load())

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrIs != nil {
					require.ErrorIs(t, err, testCase.ErrIs)
				}

				return
			}

			require.NoError(t, err)

			if testCase.CheckResponse != nil {
				testCase.CheckResponse(t, result)
			}
		})
	}
}

// countingServer counts requests and answers every one with status.
func countingServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		writer.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server, &requests
}
