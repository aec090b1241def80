package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials        = errors.New("no credentials configured, set api-key/api-secret, a signature secret, an application or an access token")
	ErrPrivateKeyUnreadable = errors.New("private key file could not be read")
	ErrInvalidBaseURL       = errors.New("invalid base URL")
)

// CLI errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, use table, json or yaml")
	ErrNoInput             = errors.New("no input, pass a file or pipe JSON on stdin")
	ErrNATSURLRequired     = errors.New("--nats-url is required to forward events")
)
