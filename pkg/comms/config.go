package comms

import (
	"time"
)

// Default API hosts.
const (
	DefaultAPIBaseURL  = "https://api.nexmo.com"
	DefaultRESTBaseURL = "https://rest.nexmo.com"
)

// SignatureAlgorithm names the digest used for HMAC-signed requests.
type SignatureAlgorithm string

// Supported signature algorithms.
const (
	SignatureMD5    SignatureAlgorithm = "md5"
	SignatureSHA1   SignatureAlgorithm = "sha1"
	SignatureSHA256 SignatureAlgorithm = "sha256"
	SignatureSHA512 SignatureAlgorithm = "sha512"
)

// Config represents client configuration for building an api.Client.
//
// # Credentials
//
// Every credential kind whose fields are populated is added to the client's
// credential set; each endpoint then picks the first kind it accepts that the
// set holds:
//   - APIKey + APISecret: ApiKeySecret (HTTP basic auth).
//   - APIKey + SignatureSecret: HmacSigned (signed query parameters).
//   - ApplicationID + PrivateKey/PrivateKeyPath: BearerToken minted on demand.
//   - AccessToken: BearerToken used as-is until AccessTokenExpiry.
//
// An endpoint whose acceptable kinds are all missing fails with
// NoUsableCredentialError before any network call.
//
// # Timeouts and retries
//
// Every call performs exactly one HTTP round trip. Per-call deadlines come
// from the context; HTTPTimeout bounds the underlying transport. Retries are
// the caller's responsibility, see IsRetryable.
type Config struct {
	// APIBaseURL is the host for voice and conversation endpoints.
	// Defaults to DefaultAPIBaseURL.
	APIBaseURL string
	// RESTBaseURL is the host for account and SMS endpoints.
	// Defaults to DefaultRESTBaseURL.
	RESTBaseURL string

	// APIKey identifies the account.
	APIKey string
	// APISecret is the account secret used with APIKey for basic auth.
	APISecret string
	// SignatureSecret is the secret used to sign requests and to verify
	// signed webhooks.
	SignatureSecret string
	// SignatureAlgorithm selects the HMAC digest. Defaults to SignatureSHA256.
	SignatureAlgorithm SignatureAlgorithm

	// ApplicationID is carried in the application_id claim of minted tokens.
	ApplicationID string
	// PrivateKey is the PEM encoded RSA key used to sign application tokens.
	PrivateKey []byte
	// PrivateKeyPath is read by commsclient.New when PrivateKey is empty.
	PrivateKeyPath string
	// TokenTTL is the lifetime of minted tokens. Defaults to 15 minutes.
	TokenTTL time.Duration

	// AccessToken, if set, is used directly as a bearer token.
	AccessToken string
	// AccessTokenExpiry marks when AccessToken stops being usable; zero means never.
	AccessTokenExpiry time.Time

	// HTTPTimeout bounds a single round trip at the transport level.
	HTTPTimeout time.Duration
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
