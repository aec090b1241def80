package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

var sendSMSEndpoint = MustEndpoint(Spec[*api.SendSMSRequest, api.SMSResponse]{
	Method:      comms.MethodPost,
	Base:        RESTBase,
	Auth:        []comms.CredentialKind{comms.HmacSigned, comms.ApiKeySecret},
	Path:        Fixed[*api.SendSMSRequest]("/sms/json"),
	ErrorFamily: comms.ErrorFamilyLegacy,
})

// SMSClient implements api.SMSClient.
type SMSClient struct {
	dispatcher *Dispatcher
}

// NewSMSClient creates a new SMS client.
func NewSMSClient(dispatcher *Dispatcher) *SMSClient {
	return &SMSClient{dispatcher: dispatcher}
}

// Send implements api.SMSClient.Send. Per-part rejections arrive with a 200
// status; see api.SMSResponse.Failed.
func (c *SMSClient) Send(ctx context.Context, req *api.SendSMSRequest) (*api.SMSResponse, error) {
	resp, err := Execute(ctx, c.dispatcher, sendSMSEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("sending SMS: %w", err)
	}

	return &resp, nil
}
