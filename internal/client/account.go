package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

var getBalanceEndpoint = MustEndpoint(Spec[comms.Empty, api.Balance]{
	Method:      comms.MethodGet,
	Base:        RESTBase,
	Auth:        []comms.CredentialKind{comms.ApiKeySecret},
	Path:        Fixed[comms.Empty]("/account/get-balance"),
	ErrorFamily: comms.ErrorFamilyLegacy,
})

// AccountClient implements api.AccountClient.
type AccountClient struct {
	dispatcher *Dispatcher
}

// NewAccountClient creates a new account client.
func NewAccountClient(dispatcher *Dispatcher) *AccountClient {
	return &AccountClient{dispatcher: dispatcher}
}

// GetBalance implements api.AccountClient.GetBalance.
func (c *AccountClient) GetBalance(ctx context.Context) (*api.Balance, error) {
	balance, err := Execute(ctx, c.dispatcher, getBalanceEndpoint, comms.Empty{})
	if err != nil {
		return nil, fmt.Errorf("getting balance: %w", err)
	}

	return &balance, nil
}
