package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fivetwenty-io/comms-client/internal/auth"
	"github.com/fivetwenty-io/comms-client/internal/constants"
	commshttp "github.com/fivetwenty-io/comms-client/internal/http"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Dispatcher executes endpoints. It holds no per-call state: the HTTP client
// and the credential set are shared by concurrent calls.
type Dispatcher struct {
	httpClient  *commshttp.Client
	credentials *auth.CredentialSet
	baseURLs    map[Base]string
}

// NewDispatcher creates a dispatcher over the given transport and credentials.
func NewDispatcher(httpClient *commshttp.Client, credentials *auth.CredentialSet, apiBaseURL, restBaseURL string) *Dispatcher {
	return &Dispatcher{
		httpClient:  httpClient,
		credentials: credentials,
		baseURLs: map[Base]string{
			APIBase:  apiBaseURL,
			RESTBase: restBaseURL,
		},
	}
}

// Execute performs endpoint for req with exactly one HTTP round trip.
//
// Precondition and credential failures are returned before any I/O. A 2xx
// response is decoded into Res. A 204 yields the zero Res, as does any 2xx
// when Res is comms.Empty; an empty body for any other Res is a
// *comms.MalformedPayloadError.
// Any other status yields a *comms.APIError parsed with the endpoint's
// error family, and failures below HTTP yield a *comms.TransportError.
func Execute[Req, Res any](ctx context.Context, d *Dispatcher, endpoint *Endpoint[Req, Res], req Req) (Res, error) {
	var zero Res

	if isNilRequest(req) {
		return zero, comms.NewPreconditionError("", "request is required")
	}

	path, err := endpoint.Resolve(req)
	if err != nil {
		return zero, err
	}

	credential, err := d.credentials.Select(endpoint.auth)
	if err != nil {
		return zero, err
	}

	body, query, err := endpoint.serialize(req)
	if err != nil {
		return zero, err
	}

	resp, err := d.httpClient.Do(ctx, &commshttp.Request{
		Method:  string(endpoint.method),
		BaseURL: d.baseURLs[endpoint.base],
		Path:    path,
		Query:   query,
		Body:    body,
		Auth:    credential,
	})
	if err != nil {
		return zero, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody := resp.Body
		if len(errBody) > constants.MaxErrorBodyBytes {
			errBody = errBody[:constants.MaxErrorBodyBytes]
		}

		return zero, comms.ParseAPIError(endpoint.family, resp.StatusCode, errBody)
	}

	return endpoint.decodeResponse(resp)
}

func (e *Endpoint[Req, Res]) decodeResponse(resp *commshttp.Response) (Res, error) {
	var result Res

	if _, ok := any(result).(comms.Empty); ok {
		return result, nil
	}

	if resp.StatusCode == http.StatusNoContent {
		return result, nil
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return result, comms.NewMalformedPayloadError("", ErrEmptyResponse)
	}

	var err error

	if e.decode != nil {
		result, err = e.decode(resp.Body)
	} else {
		err = json.Unmarshal(resp.Body, &result)
	}

	if err != nil {
		var zero Res

		if errors.Is(err, comms.ErrMalformedPayload) {
			return zero, err
		}

		return zero, comms.NewMalformedPayloadError("", err)
	}

	return result, nil
}
