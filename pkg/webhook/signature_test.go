package webhook

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	t.Parallel()

	body := []byte(`{"type":"message"}`)
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	token, err := SignPayload("s3cret", body, issued, time.Minute)
	require.NoError(t, err)

	verifier := NewVerifier("s3cret")
	verifier.now = func() time.Time { return issued.Add(30 * time.Second) }

	claims, err := verifier.Verify("Bearer "+token, body)
	require.NoError(t, err)
	assert.Equal(t, PayloadHash(body), claims.PayloadHash)
	assert.NotEmpty(t, claims.ID)

	_, err = verifier.Verify(token, body)
	require.ErrorIs(t, err, ErrMissingSignature)

	_, err = verifier.Verify("Bearer "+token, []byte(`{"type":"message" }`))
	require.ErrorIs(t, err, ErrPayloadHashMismatch)

	verifier.now = func() time.Time { return issued.Add(2 * time.Minute) }

	_, err = verifier.Verify("Bearer "+token, body)
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifier_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	body := []byte(`{}`)
	claims := Claims{PayloadHash: PayloadHash(body)}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewVerifier("s3cret").Verify("Bearer "+unsigned, body)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifier_MissingPayloadHash(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewVerifier("s3cret").Verify("Bearer "+token, []byte(`{}`))
	require.ErrorIs(t, err, ErrPayloadHashMismatch)
}

func TestVerifier_RequiresExpiry(t *testing.T) {
	t.Parallel()

	body := []byte(`{"type":"message"}`)
	claims := Claims{PayloadHash: PayloadHash(body)}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = NewVerifier("s3cret").Verify("Bearer "+token, body)
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
}

func TestPayloadHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", PayloadHash(nil))
}
