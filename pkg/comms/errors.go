package comms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors matched through errors.Is against the typed errors below.
var (
	ErrPrecondition       = errors.New("precondition failed")
	ErrNoUsableCredential = errors.New("no usable credential")
	ErrTransport          = errors.New("transport failure")
	ErrMalformedPayload   = errors.New("malformed payload")
	ErrAPI                = errors.New("API error")

	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("not authorized")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrServer       = errors.New("server error")
)

// PreconditionError reports a malformed request detected before any I/O:
// an invalid path parameter or a builder validation failure.
type PreconditionError struct {
	Field      string
	Constraint string
	Err        error
}

// NewPreconditionError creates a precondition error for field.
func NewPreconditionError(field, constraint string) *PreconditionError {
	return &PreconditionError{Field: field, Constraint: constraint}
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("precondition failed: %s", e.Constraint)
	}

	return fmt.Sprintf("precondition failed: %s: %s", e.Field, e.Constraint)
}

// Is implements errors.Is.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// Unwrap returns the underlying error.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// PreconditionErrors aggregates every violation found by a single build step.
type PreconditionErrors []*PreconditionError

// Error implements the error interface.
func (e PreconditionErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Field+": "+err.Constraint)
	}

	return fmt.Sprintf("precondition failed: %s", strings.Join(parts, "; "))
}

// Is implements errors.Is.
func (e PreconditionErrors) Is(target error) bool {
	return target == ErrPrecondition
}

// First returns the first violation or nil.
func (e PreconditionErrors) First() *PreconditionError {
	if len(e) == 0 {
		return nil
	}

	return e[0]
}

// NoUsableCredentialError is returned when none of the endpoint's acceptable
// credential kinds is present in the configured credential set.
type NoUsableCredentialError struct {
	Acceptable []CredentialKind
	Available  []CredentialKind
}

// Error implements the error interface.
func (e *NoUsableCredentialError) Error() string {
	return fmt.Sprintf("no usable credential: endpoint accepts %v, configured %v", e.Acceptable, e.Available)
}

// Is implements errors.Is.
func (e *NoUsableCredentialError) Is(target error) bool {
	return target == ErrNoUsableCredential
}

// TransportError represents a failure below the application protocol:
// connection refused, timeout, cancelled context, unreadable response bytes.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

// Is implements errors.Is.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedPayloadError reports a response or event payload that cannot be
// parsed into the expected shape.
type MalformedPayloadError struct {
	// Field is the JSON field the failure is scoped to; empty for the whole document.
	Field string
	Err   error
}

// NewMalformedPayloadError creates a malformed payload error scoped to field.
func NewMalformedPayloadError(field string, err error) *MalformedPayloadError {
	return &MalformedPayloadError{Field: field, Err: err}
}

// Error implements the error interface.
func (e *MalformedPayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed payload: %v", e.Err)
	}

	return fmt.Sprintf("malformed payload: %s: %v", e.Field, e.Err)
}

// Is implements errors.Is.
func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// Unwrap returns the underlying error.
func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// ErrorFamily selects how a non-2xx response body is interpreted.
type ErrorFamily string

const (
	// ErrorFamilyProblem is the RFC 7807 problem-details shape used by the newer APIs.
	ErrorFamilyProblem ErrorFamily = "problem"
	// ErrorFamilyLegacy is the error-code/error-code-label shape of the REST APIs.
	ErrorFamilyLegacy ErrorFamily = "legacy"
)

// InvalidParameter describes one rejected request parameter.
type InvalidParameter struct {
	Name   string `json:"name"   yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// APIError is a non-2xx response whose body was interpreted through the
// endpoint's error family.
type APIError struct {
	StatusCode        int                `json:"-"                            yaml:"status_code"`
	Family            ErrorFamily        `json:"-"                            yaml:"family"`
	Type              string             `json:"type,omitempty"               yaml:"type,omitempty"`
	Title             string             `json:"title,omitempty"              yaml:"title,omitempty"`
	Detail            string             `json:"detail,omitempty"             yaml:"detail,omitempty"`
	Instance          string             `json:"instance,omitempty"           yaml:"instance,omitempty"`
	Code              string             `json:"-"                            yaml:"code,omitempty"`
	InvalidParameters []InvalidParameter `json:"invalid_parameters,omitempty" yaml:"invalid_parameters,omitempty"`
	Body              []byte             `json:"-"                            yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}

	if msg == "" {
		return fmt.Sprintf("API error %d", e.StatusCode)
	}

	return fmt.Sprintf("API error %d: %s", e.StatusCode, msg)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	if target == ErrAPI {
		return true
	}

	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}

	return e.StatusCode >= http.StatusInternalServerError && target == ErrServer
}

type legacyError struct {
	Type       string `json:"type"`
	ErrorCode  string `json:"error-code"`
	ErrorLabel string `json:"error-code-label"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

// ParseAPIError interprets body according to family. Bodies that do not fit
// the family's shape still produce an APIError carrying the raw text.
func ParseAPIError(family ErrorFamily, statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Family: family, Body: body}

	switch family {
	case ErrorFamilyLegacy:
		var legacy legacyError

		err := json.Unmarshal(body, &legacy)
		if err != nil {
			apiErr.Detail = strings.TrimSpace(string(body))

			return apiErr
		}

		apiErr.Type = legacy.Type
		apiErr.Code = legacy.ErrorCode
		apiErr.Title = legacy.Title
		apiErr.Detail = legacy.Detail

		if apiErr.Detail == "" {
			apiErr.Detail = legacy.ErrorLabel
		}
	default:
		err := json.Unmarshal(body, apiErr)
		if err != nil {
			apiErr.Detail = strings.TrimSpace(string(body))
		}

		apiErr.StatusCode = statusCode
		apiErr.Family = family
	}

	return apiErr
}

// IsRetryable reports whether err describes a runtime condition a caller may
// retry: transport failures, rate limiting and server errors. Precondition,
// credential and malformed-payload failures are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTransport) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
