package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/comms-client/internal/validation"
	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

var bearerOnly = []comms.CredentialKind{comms.BearerToken}

type callRef struct {
	UUID string `json:"-"`
}

func callPath(uuid string) Path {
	return NewPath("/v1/calls/{uuid}", "uuid", uuid)
}

func callStreamPath(uuid string) Path {
	return NewPath("/v1/calls/{uuid}/stream", "uuid", uuid)
}

var (
	createCallEndpoint = MustEndpoint(Spec[*api.CreateCallRequest, api.CallResponse]{
		Method: comms.MethodPost,
		Auth:   bearerOnly,
		Path:   Fixed[*api.CreateCallRequest]("/v1/calls"),
	})

	getCallEndpoint = MustEndpoint(Spec[callRef, api.Call]{
		Method: comms.MethodGet,
		Auth:   bearerOnly,
		Path:   func(r callRef) Path { return callPath(r.UUID) },
	})

	listCallsEndpoint = MustEndpoint(Spec[*api.ListCallsRequest, api.CallsPage]{
		Method: comms.MethodGet,
		Auth:   bearerOnly,
		Path:   Fixed[*api.ListCallsRequest]("/v1/calls"),
	})

	updateCallEndpoint = MustEndpoint(Spec[*api.UpdateCallRequest, comms.Empty]{
		Method: comms.MethodPut,
		Auth:   bearerOnly,
		Path:   func(r *api.UpdateCallRequest) Path { return callPath(r.UUID) },
	})

	startStreamEndpoint = MustEndpoint(Spec[*api.StreamRequest, api.StreamResponse]{
		Method: comms.MethodPut,
		Auth:   bearerOnly,
		Path:   func(r *api.StreamRequest) Path { return callStreamPath(r.UUID) },
	})

	stopStreamEndpoint = MustEndpoint(Spec[callRef, api.StreamResponse]{
		Method: comms.MethodDelete,
		Auth:   bearerOnly,
		Path:   func(r callRef) Path { return callStreamPath(r.UUID) },
	})
)

// VoiceClient implements api.VoiceClient.
type VoiceClient struct {
	dispatcher *Dispatcher
}

// NewVoiceClient creates a new voice client.
func NewVoiceClient(dispatcher *Dispatcher) *VoiceClient {
	return &VoiceClient{dispatcher: dispatcher}
}

// CreateCall implements api.VoiceClient.CreateCall.
func (c *VoiceClient) CreateCall(ctx context.Context, req *api.CreateCallRequest) (*api.CallResponse, error) {
	call, err := Execute(ctx, c.dispatcher, createCallEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("creating call: %w", err)
	}

	return &call, nil
}

// GetCall implements api.VoiceClient.GetCall.
func (c *VoiceClient) GetCall(ctx context.Context, uuid string) (*api.Call, error) {
	call, err := Execute(ctx, c.dispatcher, getCallEndpoint, callRef{UUID: uuid})
	if err != nil {
		return nil, fmt.Errorf("getting call: %w", err)
	}

	return &call, nil
}

// ListCalls implements api.VoiceClient.ListCalls. A nil request lists with
// the server defaults.
func (c *VoiceClient) ListCalls(ctx context.Context, req *api.ListCallsRequest) (*api.CallsPage, error) {
	if req == nil {
		req = &api.ListCallsRequest{}
	}

	err := validation.Struct(req)
	if err != nil {
		return nil, fmt.Errorf("listing calls: %w", err)
	}

	page, err := Execute(ctx, c.dispatcher, listCallsEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("listing calls: %w", err)
	}

	return &page, nil
}

// UpdateCall implements api.VoiceClient.UpdateCall.
func (c *VoiceClient) UpdateCall(ctx context.Context, req *api.UpdateCallRequest) error {
	_, err := Execute(ctx, c.dispatcher, updateCallEndpoint, req)
	if err != nil {
		return fmt.Errorf("updating call: %w", err)
	}

	return nil
}

// StartStream implements api.VoiceClient.StartStream.
func (c *VoiceClient) StartStream(ctx context.Context, req *api.StreamRequest) (*api.StreamResponse, error) {
	resp, err := Execute(ctx, c.dispatcher, startStreamEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("starting stream: %w", err)
	}

	return &resp, nil
}

// StopStream implements api.VoiceClient.StopStream.
func (c *VoiceClient) StopStream(ctx context.Context, uuid string) (*api.StreamResponse, error) {
	resp, err := Execute(ctx, c.dispatcher, stopStreamEndpoint, callRef{UUID: uuid})
	if err != nil {
		return nil, fmt.Errorf("stopping stream: %w", err)
	}

	return &resp, nil
}
