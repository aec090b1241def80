package api

import (
	"github.com/fivetwenty-io/comms-client/internal/validation"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// CreateCallBuilder builds a CreateCallRequest.
type CreateCallBuilder struct {
	req CreateCallRequest
}

// NewCreateCall starts a call request.
func NewCreateCall() *CreateCallBuilder {
	return &CreateCallBuilder{}
}

// WithTo adds call destinations. Several destinations ring in parallel.
func (b *CreateCallBuilder) WithTo(to ...CallEndpoint) *CreateCallBuilder {
	b.req.To = append(b.req.To, to...)

	return b
}

// WithFrom sets the caller ID.
func (b *CreateCallBuilder) WithFrom(from CallEndpoint) *CreateCallBuilder {
	b.req.From = &from

	return b
}

// WithRandomFromNumber picks a caller ID from the application's numbers.
func (b *CreateCallBuilder) WithRandomFromNumber() *CreateCallBuilder {
	b.req.RandomFromNumber = comms.Ptr(true)

	return b
}

// WithAnswerURL sets the webhook that returns the call's NCCO.
func (b *CreateCallBuilder) WithAnswerURL(url string) *CreateCallBuilder {
	b.req.AnswerURL = []string{url}

	return b
}

// WithAnswerMethod sets the HTTP method of the answer webhook.
func (b *CreateCallBuilder) WithAnswerMethod(method string) *CreateCallBuilder {
	b.req.AnswerMethod = method

	return b
}

// WithNCCO sets the call's actions inline.
func (b *CreateCallBuilder) WithNCCO(actions ...Action) *CreateCallBuilder {
	b.req.NCCO = append(b.req.NCCO, actions...)

	return b
}

// WithEventURL sets the webhook receiving call events.
func (b *CreateCallBuilder) WithEventURL(url string) *CreateCallBuilder {
	b.req.EventURL = []string{url}

	return b
}

// WithEventMethod sets the HTTP method of the event webhook.
func (b *CreateCallBuilder) WithEventMethod(method string) *CreateCallBuilder {
	b.req.EventMethod = method

	return b
}

// WithMachineDetection sets the behaviour when a machine answers.
func (b *CreateCallBuilder) WithMachineDetection(behaviour string) *CreateCallBuilder {
	b.req.MachineDetection = behaviour

	return b
}

// WithLengthTimer limits the call duration, in seconds.
func (b *CreateCallBuilder) WithLengthTimer(seconds int) *CreateCallBuilder {
	b.req.LengthTimer = &seconds

	return b
}

// WithRingingTimer limits how long the call rings, in seconds.
func (b *CreateCallBuilder) WithRingingTimer(seconds int) *CreateCallBuilder {
	b.req.RingingTimer = &seconds

	return b
}

// Build validates the builder and returns the request.
func (b *CreateCallBuilder) Build() (*CreateCallRequest, error) {
	req := b.req
	req.To = append([]CallEndpoint(nil), b.req.To...)
	req.NCCO = append([]Action(nil), b.req.NCCO...)

	if len(req.NCCO) == 0 {
		req.NCCO = nil
	}

	randomFrom := req.RandomFromNumber != nil && *req.RandomFromNumber

	var exclusive []error

	switch {
	case req.From != nil && randomFrom:
		exclusive = append(exclusive, comms.NewPreconditionError("from", "must not be set together with random_from_number"))
	case req.From == nil && !randomFrom:
		exclusive = append(exclusive, comms.NewPreconditionError("from", "either from or random_from_number is required"))
	case req.From != nil:
		exclusive = append(exclusive, validateCallEndpoint("from", *req.From))
	}

	switch {
	case len(req.AnswerURL) > 0 && len(req.NCCO) > 0:
		exclusive = append(exclusive, comms.NewPreconditionError("answer_url", "must not be set together with ncco"))
	case len(req.AnswerURL) == 0 && len(req.NCCO) == 0:
		exclusive = append(exclusive, comms.NewPreconditionError("answer_url", "either answer_url or ncco is required"))
	}

	for _, to := range req.To {
		exclusive = append(exclusive, validateCallEndpoint("to", to))
	}

	err := validation.Join(append([]error{validation.Struct(req)}, exclusive...)...)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func validateCallEndpoint(field string, endpoint CallEndpoint) error {
	switch endpoint.Type {
	case EndpointPhone, EndpointSIP, EndpointWebsocket, EndpointApp, EndpointVBC:
	default:
		// Unknown types are reported by the struct tags.
		return nil
	}

	if endpoint.Address() == "" {
		return comms.NewPreconditionError(field, "address is required for type "+endpoint.Type)
	}

	return nil
}

// UpdateCallBuilder builds an UpdateCallRequest.
type UpdateCallBuilder struct {
	req UpdateCallRequest
}

// NewUpdateCall starts a modification of the call identified by uuid.
func NewUpdateCall(uuid string, action CallAction) *UpdateCallBuilder {
	return &UpdateCallBuilder{req: UpdateCallRequest{UUID: uuid, Action: action}}
}

// WithTransferURL continues a transferred call with the NCCO served at url.
func (b *UpdateCallBuilder) WithTransferURL(url string) *UpdateCallBuilder {
	b.req.Destination = &TransferDestination{Type: "ncco", URL: []string{url}}

	return b
}

// WithTransferNCCO continues a transferred call with actions.
func (b *UpdateCallBuilder) WithTransferNCCO(actions ...Action) *UpdateCallBuilder {
	b.req.Destination = &TransferDestination{Type: "ncco", NCCO: append([]Action(nil), actions...)}

	return b
}

// Build validates the builder and returns the request.
func (b *UpdateCallBuilder) Build() (*UpdateCallRequest, error) {
	req := b.req

	var checks []error

	if req.UUID == "" {
		checks = append(checks, comms.NewPreconditionError("uuid", "is required"))
	}

	switch {
	case req.Action == CallActionTransfer && req.Destination == nil:
		checks = append(checks, comms.NewPreconditionError("destination", "is required when action is transfer"))
	case req.Action != CallActionTransfer && req.Destination != nil:
		checks = append(checks, comms.NewPreconditionError("destination", "is only allowed when action is transfer"))
	}

	err := validation.Join(append(checks, validation.Struct(req))...)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// StreamBuilder builds a StreamRequest.
type StreamBuilder struct {
	req StreamRequest
}

// NewStream starts a stream into the call identified by uuid.
func NewStream(uuid string, streamURL ...string) *StreamBuilder {
	return &StreamBuilder{req: StreamRequest{UUID: uuid, StreamURL: streamURL}}
}

// WithStreamURL appends stream URLs.
func (b *StreamBuilder) WithStreamURL(urls ...string) *StreamBuilder {
	b.req.StreamURL = append(b.req.StreamURL, urls...)

	return b
}

// WithLoop sets how many times to play; 0 loops forever.
func (b *StreamBuilder) WithLoop(loop int) *StreamBuilder {
	b.req.Loop = &loop

	return b
}

// WithLevel sets the volume, from -1 to 1.
func (b *StreamBuilder) WithLevel(level float64) *StreamBuilder {
	b.req.Level = &level

	return b
}

// Build validates the builder and returns the request.
func (b *StreamBuilder) Build() (*StreamRequest, error) {
	req := b.req
	req.StreamURL = append([]string(nil), b.req.StreamURL...)

	var uuidErr error
	if req.UUID == "" {
		uuidErr = comms.NewPreconditionError("uuid", "is required")
	}

	err := validation.Join(uuidErr, validation.Struct(req))
	if err != nil {
		return nil, err
	}

	return &req, nil
}
