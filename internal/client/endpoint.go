package client

import (
	"errors"
	"fmt"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Static errors for err113 compliance.
var (
	ErrInvalidMethod     = errors.New("endpoint method is not supported")
	ErrNoAcceptableAuth  = errors.New("endpoint accepts no credential kind")
	ErrUnknownCredential = errors.New("endpoint accepts an unknown credential kind")
	ErrMissingPathFunc   = errors.New("endpoint has no path function")
	ErrEmptyResponse     = errors.New("empty response body")
)

// Base selects which configured host an endpoint is served from.
type Base int

const (
	// APIBase serves voice and conversation endpoints.
	APIBase Base = iota
	// RESTBase serves account and SMS endpoints.
	RESTBase
)

// Spec describes one API operation. It is turned into an immutable Endpoint
// by NewEndpoint.
type Spec[Req, Res any] struct {
	Method comms.Method
	Base   Base
	// Auth lists the acceptable credential kinds in preference order.
	Auth []comms.CredentialKind
	// Path maps a request to its path template and parameters.
	Path func(Req) Path
	// ErrorFamily selects how non-2xx bodies are parsed. Defaults to
	// comms.ErrorFamilyProblem.
	ErrorFamily comms.ErrorFamily
	// Encode overrides JSON serialization of the request body.
	Encode func(Req) ([]byte, error)
	// Decode overrides JSON deserialization of 2xx bodies.
	Decode func([]byte) (Res, error)
}

// Endpoint is an immutable operation descriptor, safe to share between
// goroutines.
type Endpoint[Req, Res any] struct {
	method comms.Method
	base   Base
	auth   []comms.CredentialKind
	path   func(Req) Path
	family comms.ErrorFamily
	encode func(Req) ([]byte, error)
	decode func([]byte) (Res, error)
}

// NewEndpoint validates spec and returns the endpoint.
func NewEndpoint[Req, Res any](spec Spec[Req, Res]) (*Endpoint[Req, Res], error) {
	if !spec.Method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, spec.Method)
	}

	if len(spec.Auth) == 0 {
		return nil, ErrNoAcceptableAuth
	}

	for _, kind := range spec.Auth {
		switch kind {
		case comms.ApiKeySecret, comms.HmacSigned, comms.BearerToken:
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownCredential, kind)
		}
	}

	if spec.Path == nil {
		return nil, ErrMissingPathFunc
	}

	family := spec.ErrorFamily
	if family == "" {
		family = comms.ErrorFamilyProblem
	}

	return &Endpoint[Req, Res]{
		method: spec.Method,
		base:   spec.Base,
		auth:   append([]comms.CredentialKind(nil), spec.Auth...),
		path:   spec.Path,
		family: family,
		encode: spec.Encode,
		decode: spec.Decode,
	}, nil
}

// MustEndpoint is like NewEndpoint but panics on an invalid spec. It is meant
// for package level endpoint tables.
func MustEndpoint[Req, Res any](spec Spec[Req, Res]) *Endpoint[Req, Res] {
	endpoint, err := NewEndpoint(spec)
	if err != nil {
		panic(err)
	}

	return endpoint
}

// Method returns the endpoint's HTTP method.
func (e *Endpoint[Req, Res]) Method() comms.Method {
	return e.method
}

// Auth returns a copy of the acceptable credential kinds.
func (e *Endpoint[Req, Res]) Auth() []comms.CredentialKind {
	return append([]comms.CredentialKind(nil), e.auth...)
}

// Resolve expands the endpoint's path for req.
func (e *Endpoint[Req, Res]) Resolve(req Req) (string, error) {
	return e.path(req).Resolve()
}

// Fixed returns a path function for endpoints without path parameters.
func Fixed[Req any](template string) func(Req) Path {
	return func(Req) Path {
		return Path{Template: template}
	}
}
