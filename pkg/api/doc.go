// Package api defines the request and response types of the supported
// resource families and the client interfaces that operate on them.
//
// Outbound requests are assembled with builders. Setters only record values;
// Build validates the whole request at once and returns a
// *comms.PreconditionError (or comms.PreconditionErrors) naming every
// offending field, so an invalid request never reaches the network:
//
//	req, err := api.NewCreateCall().
//		WithTo(api.PhoneTo("447700900000")).
//		WithRandomFromNumber().
//		WithAnswerURL("https://example.com/answer").
//		Build()
//	if err != nil {
//		return err
//	}
//
//	call, err := client.Voice().CreateCall(ctx, req)
//
// Optional fields are pointers or omitempty values so that unset fields are
// left out of request bodies and query strings entirely.
package api
