// Package comms holds the types shared by every part of the communications
// API client: configuration, credential kinds, the logger contract and the
// error taxonomy.
//
// # Errors
//
// Failures fall into two groups that callers must be able to tell apart:
//
//   - Caller or configuration bugs, never retried: PreconditionError
//     (invalid path parameter or builder validation failure) and
//     NoUsableCredentialError (the endpoint accepts no configured credential).
//     Neither performs any network I/O.
//   - Runtime conditions: TransportError (connection, timeout, cancelled
//     context) and APIError (a non-2xx response with its status code and
//     parsed body).
//
// MalformedPayloadError reports a successful response or an event payload
// that does not parse into the expected shape.
//
//	_, err := cli.Voice().GetCall(ctx, "63f61863-4a51-4f6b-86e1-46edebcf9356")
//	switch {
//	case errors.Is(err, comms.ErrNotFound):
//	  // 404
//	case comms.IsRetryable(err):
//	  // transport failure, 429 or 5xx
//	}
package comms
