package comms

import (
	"fmt"
	"strings"
)

// CredentialKind is one of the fixed set of supported authentication schemes.
type CredentialKind int

const (
	// ApiKeySecret is an API key and secret pair sent as basic auth.
	ApiKeySecret CredentialKind = iota + 1 //nolint:revive // matches the wire vocabulary
	// HmacSigned signs each request with a secret-derived HMAC over a canonical request string.
	HmacSigned
	// BearerToken is a short-lived signed application token.
	BearerToken
)

// String returns the credential kind name.
func (k CredentialKind) String() string {
	switch k {
	case ApiKeySecret:
		return "api-key-secret"
	case HmacSigned:
		return "hmac-signed"
	case BearerToken:
		return "bearer-token"
	default:
		return fmt.Sprintf("credential-kind(%d)", int(k))
	}
}

// ParseCredentialKind parses the names produced by String.
func ParseCredentialKind(name string) (CredentialKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "api-key-secret", "basic":
		return ApiKeySecret, nil
	case "hmac-signed", "signature":
		return HmacSigned, nil
	case "bearer-token", "jwt", "bearer":
		return BearerToken, nil
	default:
		return 0, NewPreconditionError("credential_kind", "unknown credential kind "+name)
	}
}
