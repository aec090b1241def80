package auth_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/internal/auth"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

func TestCanonicalRequest(t *testing.T) {
	t.Parallel()

	query := url.Values{"to": {"447700900000"}, "api_key": {"key"}, "timestamp": {"1700000000"}, "nonce": {"n-1"}}
	body := []byte(`{"text":"hi"}`)
	bodyHash := sha256.Sum256(body)

	expected := "POST\n/sms/json\napi_key=key&nonce=n-1&timestamp=1700000000&to=447700900000\n" +
		hex.EncodeToString(bodyHash[:]) + "\n1700000000\nn-1"

	assert.Equal(t, expected, auth.CanonicalRequest("post", "/sms/json", query, body, "1700000000", "n-1"))
}

func TestSignedCredential_Apply(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)

	for _, algorithm := range []comms.SignatureAlgorithm{"", comms.SignatureMD5, comms.SignatureSHA1, comms.SignatureSHA256, comms.SignatureSHA512} {
		t.Run(string(algorithm), func(t *testing.T) {
			t.Parallel()

			set, err := auth.NewCredentialSet(&comms.Config{
				APIKey:             "key",
				SignatureSecret:    "signature-secret",
				SignatureAlgorithm: algorithm,
			}, auth.WithClock(func() time.Time { return now }), auth.WithNonce(func() string { return "n-1" }))
			require.NoError(t, err)

			credential, err := set.Select([]comms.CredentialKind{comms.HmacSigned, comms.ApiKeySecret})
			require.NoError(t, err)
			assert.Equal(t, comms.HmacSigned, credential.Kind())

			body := []byte(`{"to":"447700900000"}`)
			req := httptest.NewRequest(http.MethodPost, "https://rest.example.com/sms/json?type=text", strings.NewReader(string(body)))
			require.NoError(t, credential.Apply(req, body))

			query := req.URL.Query()
			assert.Equal(t, "key", query.Get(auth.ParamAPIKey))
			assert.Equal(t, "1700000000", query.Get(auth.ParamTimestamp))
			assert.Equal(t, "n-1", query.Get(auth.ParamNonce))
			assert.Equal(t, "text", query.Get("type"))

			signer, err := auth.NewRequestSigner("key", "signature-secret", algorithm)
			require.NoError(t, err)
			assert.True(t, signer.Verify(http.MethodPost, "/sms/json", query, body, query.Get(auth.ParamSignature)))
			assert.False(t, signer.Verify(http.MethodPost, "/sms/json", query, []byte(`{"to":"447700900001"}`), query.Get(auth.ParamSignature)))
		})
	}
}

func TestRequestSigner_SHA256MatchesHMAC(t *testing.T) {
	t.Parallel()

	signer, err := auth.NewRequestSigner("key", "secret", comms.SignatureSHA256)
	require.NoError(t, err)
	assert.Equal(t, comms.SignatureSHA256, signer.Algorithm())

	query := url.Values{"api_key": {"key"}, "nonce": {"n"}, "timestamp": {"1"}}

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(auth.CanonicalRequest(http.MethodGet, "/v1/calls", query, nil, "1", "n")))

	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), signer.Sign(http.MethodGet, "/v1/calls", query, nil, "1", "n"))
}
