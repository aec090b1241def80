package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Authorizer renders auth material onto an outgoing request.
type Authorizer interface {
	Apply(req *http.Request, body []byte) error
}

// Request is one HTTP call. Body is sent verbatim with a JSON content type.
type Request struct {
	Method  string
	BaseURL string
	Path    string
	Query   url.Values
	Body    []byte
	Headers map[string]string
	Auth    Authorizer
}

// Response is the status, headers and fully read body of a call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs exactly one round trip per Do call.
type Client struct {
	httpClient *retryablehttp.Client
	userAgent  string
	logger     comms.Logger
	debug      bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug traces and transport messages.
func WithLogger(logger comms.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug enables request and response traces.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout bounds a single round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying standard client, keeping the
// single-attempt policy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a client. Retries are disabled: failures surface to the
// caller after the first attempt.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
		logger:     comms.NoopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// noRetry never asks for another attempt. A done context is reported so
// cancellation is not mistaken for a response.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return false, nil
}

// Do sends req and reads the whole response. Any status code is returned as
// a Response; only failures below HTTP produce a *comms.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := buildURL(req.BaseURL, req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	transportErr := func(err error) error {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redact(urlErr.URL)
		}

		return &comms.TransportError{Method: req.Method, URL: redact(fullURL), Err: err}
	}

	err = ctx.Err()
	if err != nil {
		return nil, transportErr(err)
	}

	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, transportErr(fmt.Errorf("creating request: %w", err))
	}

	httpReq.Header.Set(constants.HeaderAccept, constants.MediaTypeJSON)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.MediaTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if req.Auth != nil {
		err = req.Auth.Apply(httpReq.Request, req.Body)
		if err != nil {
			return nil, &comms.PreconditionError{Field: "credential", Constraint: "could not be applied: " + err.Error(), Err: err}
		}
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    redact(httpReq.URL.String()),
			"bytes":  len(req.Body),
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, transportErr(err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(fmt.Errorf("reading response body: %w", err))
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"bytes":    len(respBody),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

func buildURL(baseURL, path string, query url.Values) (string, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidBaseURL, baseURL)
	}

	var sb strings.Builder

	sb.WriteString(base.String())

	if !strings.HasPrefix(path, "/") {
		sb.WriteByte('/')
	}

	sb.WriteString(path)

	if len(query) > 0 {
		sb.WriteByte('?')
		sb.WriteString(query.Encode())
	}

	return sb.String(), nil
}

// redact hides signature parameters in logged and reported URLs.
func redact(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	for _, key := range []string{"sig", "api_secret"} {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// Reader returns the response body as a reader.
func (r *Response) Reader() io.Reader {
	return bytes.NewReader(r.Body)
}
