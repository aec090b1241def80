package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout bounds one round trip when the config sets none.
	DefaultHTTPTimeout = 30 * time.Second

	// WebhookReadTimeout bounds reading an inbound webhook request.
	WebhookReadTimeout = 10 * time.Second

	// ShutdownTimeout bounds a graceful webhook server shutdown.
	ShutdownTimeout = 5 * time.Second
)

// HTTP headers and media types.
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"

	MediaTypeJSON = "application/json"
)

// Client identification.
const (
	// DefaultUserAgent is sent when the config sets no User-Agent.
	DefaultUserAgent = "comms-client-go/" + Version

	// Version is the library version.
	Version = "0.4.0"
)

// Limits.
const (
	// MaxWebhookBodyBytes caps the size of an inbound webhook body.
	MaxWebhookBodyBytes = 1 << 20

	// MaxErrorBodyBytes caps how much of an error body is kept in an APIError.
	MaxErrorBodyBytes = 64 << 10
)

// Event forwarding.
const (
	// DefaultSubjectPrefix prefixes NATS subjects of forwarded events.
	DefaultSubjectPrefix = "comms.events"
)
