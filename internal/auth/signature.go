package auth

import (
	"crypto/hmac"
	"crypto/md5"  //nolint:gosec // Selectable legacy signature algorithm
	"crypto/sha1" //nolint:gosec // Selectable legacy signature algorithm
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Signed request query parameters.
const (
	ParamAPIKey    = "api_key"
	ParamTimestamp = "timestamp"
	ParamNonce     = "nonce"
	ParamSignature = "sig"
)

// RequestSigner signs requests with an HMAC over a canonical request string.
type RequestSigner struct {
	apiKey    string
	secret    []byte
	algorithm comms.SignatureAlgorithm
	newHash   func() hash.Hash
	nonce     func() string
}

// NewRequestSigner creates a signer. An empty algorithm selects SHA-256.
func NewRequestSigner(apiKey, secret string, algorithm comms.SignatureAlgorithm) (*RequestSigner, error) {
	if algorithm == "" {
		algorithm = comms.SignatureSHA256
	}

	newHash, err := hashFor(algorithm)
	if err != nil {
		return nil, err
	}

	return &RequestSigner{
		apiKey:    apiKey,
		secret:    []byte(secret),
		algorithm: algorithm,
		newHash:   newHash,
		nonce:     uuid.NewString,
	}, nil
}

func hashFor(algorithm comms.SignatureAlgorithm) (func() hash.Hash, error) {
	switch comms.SignatureAlgorithm(strings.ToLower(string(algorithm))) {
	case comms.SignatureMD5:
		return md5.New, nil
	case comms.SignatureSHA1:
		return sha1.New, nil
	case comms.SignatureSHA256:
		return sha256.New, nil
	case comms.SignatureSHA512:
		return sha512.New, nil
	default:
		return nil, comms.NewPreconditionError("signature_algorithm", fmt.Sprintf("unsupported algorithm %q", algorithm))
	}
}

// CanonicalRequest builds the string that is signed:
//
//	METHOD \n PATH \n sorted query \n hex(sha256(body)) \n timestamp \n nonce
//
// query must already hold api_key, timestamp and nonce and must not hold sig.
func CanonicalRequest(method, path string, query url.Values, body []byte, timestamp, nonce string) string {
	bodyHash := sha256.Sum256(body)

	return strings.Join([]string{
		strings.ToUpper(method),
		path,
		query.Encode(),
		hex.EncodeToString(bodyHash[:]),
		timestamp,
		nonce,
	}, "\n")
}

// Sign returns the hex encoded HMAC of the canonical request.
func (s *RequestSigner) Sign(method, path string, query url.Values, body []byte, timestamp, nonce string) string {
	mac := hmac.New(s.newHash, s.secret)
	mac.Write([]byte(CanonicalRequest(method, path, query, body, timestamp, nonce)))

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig matches the canonical request.
func (s *RequestSigner) Verify(method, path string, query url.Values, body []byte, sig string) bool {
	unsigned := cloneValues(query)
	unsigned.Del(ParamSignature)

	expected := s.Sign(method, path, unsigned, body, unsigned.Get(ParamTimestamp), unsigned.Get(ParamNonce))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(sig)))
}

// apply adds api_key, timestamp, nonce and sig to the request URL.
func (s *RequestSigner) apply(req *http.Request, body []byte, now time.Time) {
	query := req.URL.Query()
	timestamp := strconv.FormatInt(now.Unix(), 10)
	nonce := s.nonce()

	query.Set(ParamAPIKey, s.apiKey)
	query.Set(ParamTimestamp, timestamp)
	query.Set(ParamNonce, nonce)
	query.Del(ParamSignature)

	query.Set(ParamSignature, s.Sign(req.Method, req.URL.EscapedPath(), query, body, timestamp, nonce))
	req.URL.RawQuery = query.Encode()
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}

	return out
}

// Algorithm returns the digest the signer uses.
func (s *RequestSigner) Algorithm() comms.SignatureAlgorithm {
	return s.algorithm
}
