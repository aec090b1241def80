package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of minted application tokens.
const DefaultTokenTTL = 15 * time.Minute

// Static errors for err113 compliance.
var (
	ErrMissingApplicationID = errors.New("application id is required")
	ErrMissingPrivateKey    = errors.New("private key is required")
)

// ApplicationClaims are the claims of an application token.
type ApplicationClaims struct {
	ApplicationID string `json:"application_id"`
	jwt.RegisteredClaims
}

// ApplicationTokenMinter mints RS256 application tokens on demand and reuses
// the last one until it is about to expire.
type ApplicationTokenMinter struct {
	applicationID string
	key           *rsa.PrivateKey
	ttl           time.Duration
	store         *TokenStore
	mutex         sync.Mutex
}

// NewApplicationTokenMinter parses a PEM encoded RSA private key. A ttl of
// zero selects DefaultTokenTTL.
func NewApplicationTokenMinter(applicationID string, privateKey []byte, ttl time.Duration) (*ApplicationTokenMinter, error) {
	if applicationID == "" {
		return nil, ErrMissingApplicationID
	}

	if len(privateKey) == 0 {
		return nil, ErrMissingPrivateKey
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKey)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &ApplicationTokenMinter{
		applicationID: applicationID,
		key:           key,
		ttl:           ttl,
		store:         NewTokenStore(),
	}, nil
}

// Token returns a token valid at now, minting a new one when the cached
// token is missing or inside the expiry buffer. Concurrent callers share a
// single mint.
func (m *ApplicationTokenMinter) Token(now time.Time) (*Token, error) {
	if token := m.store.Get(); token.ValidAt(now) {
		return token, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if token := m.store.Get(); token.ValidAt(now) {
		return token, nil
	}

	token, err := m.mint(now)
	if err != nil {
		return nil, err
	}

	m.store.Set(token)

	return token, nil
}

func (m *ApplicationTokenMinter) mint(now time.Time) (*Token, error) {
	expiresAt := now.Add(m.ttl)

	claims := ApplicationClaims{
		ApplicationID: m.applicationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(m.key)
	if err != nil {
		return nil, fmt.Errorf("signing application token: %w", err)
	}

	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

// PublicKey returns the key that verifies minted tokens.
func (m *ApplicationTokenMinter) PublicKey() *rsa.PublicKey {
	return &m.key.PublicKey
}
