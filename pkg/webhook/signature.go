package webhook

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Static errors for err113 compliance.
var (
	ErrMissingSignature     = errors.New("missing bearer signature")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrPayloadHashMismatch  = errors.New("payload hash does not match body")
	ErrUnexpectedSigningAlg = errors.New("unexpected signing method")
)

// Claims is the payload of a webhook signature token.
type Claims struct {
	PayloadHash string `json:"payload_hash"`
	jwt.RegisteredClaims
}

// PayloadHash returns the hex encoded SHA-256 of body.
func PayloadHash(body []byte) string {
	sum := sha256.Sum256(body)

	return hex.EncodeToString(sum[:])
}

// SignPayload creates an HS256 token binding body to secret, valid for ttl.
func SignPayload(secret string, body []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		PayloadHash: PayloadHash(body),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing webhook payload: %w", err)
	}

	return signed, nil
}

// Verifier checks the Authorization header of inbound webhooks.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a verifier for secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify checks that authorization carries a token signed with the secret
// whose payload_hash matches body.
func (v *Verifier) Verify(authorization string, body []byte) (*Claims, error) {
	tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || tokenString == "" {
		return nil, ErrMissingSignature
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedSigningAlg, token.Header["alg"])
		}

		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	if claims.PayloadHash == "" ||
		subtle.ConstantTimeCompare([]byte(strings.ToLower(claims.PayloadHash)), []byte(PayloadHash(body))) != 1 {
		return nil, ErrPayloadHashMismatch
	}

	return claims, nil
}
