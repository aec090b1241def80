// Package auth holds the client's credential set and selects, per endpoint,
// the credential used to authenticate a request.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Credential is a selected credential ready to be rendered onto a request.
type Credential interface {
	Kind() comms.CredentialKind
	// Apply adds the auth material to req. body is the serialized request
	// body, which signed credentials cover.
	Apply(req *http.Request, body []byte) error
}

// BasicCredential renders an API key and secret as HTTP basic auth.
type BasicCredential struct {
	APIKey    string
	APISecret string
}

// Kind implements Credential.
func (c BasicCredential) Kind() comms.CredentialKind { return comms.ApiKeySecret }

// Apply implements Credential.
func (c BasicCredential) Apply(req *http.Request, _ []byte) error {
	req.SetBasicAuth(c.APIKey, c.APISecret)

	return nil
}

// SignedCredential renders an HMAC signature into the query string.
type SignedCredential struct {
	signer *RequestSigner
	now    time.Time
}

// Kind implements Credential.
func (c SignedCredential) Kind() comms.CredentialKind { return comms.HmacSigned }

// Apply implements Credential.
func (c SignedCredential) Apply(req *http.Request, body []byte) error {
	c.signer.apply(req, body, c.now)

	return nil
}

// BearerCredential renders a token in the Authorization header.
type BearerCredential struct {
	Token *Token
}

// Kind implements Credential.
func (c BearerCredential) Kind() comms.CredentialKind { return comms.BearerToken }

// Apply implements Credential.
func (c BearerCredential) Apply(req *http.Request, _ []byte) error {
	req.Header.Set("Authorization", "Bearer "+c.Token.AccessToken)

	return nil
}

// CredentialSet is the fixed set of credentials a client holds. Only minted
// application tokens change after construction.
type CredentialSet struct {
	basic       *BasicCredential
	signer      *RequestSigner
	staticToken *Token
	minter      *ApplicationTokenMinter
	now         func() time.Time
}

// Option configures a CredentialSet.
type Option func(*CredentialSet)

// WithClock overrides the clock used for expiry checks, minting and signing.
func WithClock(now func() time.Time) Option {
	return func(s *CredentialSet) {
		s.now = now
	}
}

// WithNonce overrides the nonce source of signed requests.
func WithNonce(nonce func() string) Option {
	return func(s *CredentialSet) {
		if s.signer != nil {
			s.signer.nonce = nonce
		}
	}
}

// NewCredentialSet builds the credential set from config. A kind is present
// when all of its fields are set; a private key that does not parse is an
// error rather than a missing kind.
func NewCredentialSet(config *comms.Config, opts ...Option) (*CredentialSet, error) {
	set := &CredentialSet{now: time.Now}

	if config.APIKey != "" && config.APISecret != "" {
		set.basic = &BasicCredential{APIKey: config.APIKey, APISecret: config.APISecret}
	}

	if config.APIKey != "" && config.SignatureSecret != "" {
		signer, err := NewRequestSigner(config.APIKey, config.SignatureSecret, config.SignatureAlgorithm)
		if err != nil {
			return nil, err
		}

		set.signer = signer
	}

	if config.AccessToken != "" {
		set.staticToken = &Token{AccessToken: config.AccessToken, TokenType: "Bearer", ExpiresAt: config.AccessTokenExpiry}
	}

	if config.ApplicationID != "" && len(config.PrivateKey) > 0 {
		minter, err := NewApplicationTokenMinter(config.ApplicationID, config.PrivateKey, config.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("configuring application token: %w", err)
		}

		set.minter = minter
	}

	for _, opt := range opts {
		opt(set)
	}

	return set, nil
}

// Has reports whether the set holds a usable credential of kind at the
// current time.
func (s *CredentialSet) Has(kind comms.CredentialKind) bool {
	return s.has(kind, s.now())
}

func (s *CredentialSet) has(kind comms.CredentialKind, now time.Time) bool {
	switch kind {
	case comms.ApiKeySecret:
		return s.basic != nil
	case comms.HmacSigned:
		return s.signer != nil
	case comms.BearerToken:
		return s.minter != nil || s.staticToken.ValidAt(now)
	default:
		return false
	}
}

// Kinds lists the kinds currently usable, in enum order.
func (s *CredentialSet) Kinds() []comms.CredentialKind {
	now := s.now()

	var kinds []comms.CredentialKind

	for _, kind := range []comms.CredentialKind{comms.ApiKeySecret, comms.HmacSigned, comms.BearerToken} {
		if s.has(kind, now) {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

// Select returns the first acceptable kind the set holds, evaluated at the
// current time. Application tokens are minted here, not at construction.
// When no acceptable kind is present it fails with
// *comms.NoUsableCredentialError.
func (s *CredentialSet) Select(acceptable []comms.CredentialKind) (Credential, error) {
	now := s.now()

	for _, kind := range acceptable {
		if !s.has(kind, now) {
			continue
		}

		switch kind {
		case comms.ApiKeySecret:
			return *s.basic, nil
		case comms.HmacSigned:
			return SignedCredential{signer: s.signer, now: now}, nil
		case comms.BearerToken:
			if s.staticToken.ValidAt(now) {
				return BearerCredential{Token: s.staticToken}, nil
			}

			token, err := s.minter.Token(now)
			if err != nil {
				return nil, err
			}

			return BearerCredential{Token: token}, nil
		}
	}

	return nil, &comms.NoUsableCredentialError{
		Acceptable: append([]comms.CredentialKind(nil), acceptable...),
		Available:  s.Kinds(),
	}
}
