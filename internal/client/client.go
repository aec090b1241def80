package client

import (
	"context"
	"errors"

	"github.com/fivetwenty-io/comms-client/internal/auth"
	"github.com/fivetwenty-io/comms-client/internal/http"
	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// Static errors for err113 compliance.
var (
	ErrAPIBaseURLRequired  = errors.New("API base URL is required")
	ErrRESTBaseURLRequired = errors.New("REST base URL is required")
)

// Client implements the api.Client interface.
type Client struct {
	dispatcher *Dispatcher

	// Resource clients
	voice         *VoiceClient
	conversations *ConversationsClient
	account       *AccountClient
	sms           *SMSClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *comms.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// New creates a client from a normalized config. Base URLs must already be
// set; see commsclient.New for defaults. Credentials are checked per call,
// not here.
func New(_ context.Context, config *comms.Config, authOpts ...auth.Option) (*Client, error) {
	if config.APIBaseURL == "" {
		return nil, ErrAPIBaseURLRequired
	}

	if config.RESTBaseURL == "" {
		return nil, ErrRESTBaseURLRequired
	}

	credentials, err := auth.NewCredentialSet(config, authOpts...)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(createHTTPClientOptions(config)...)

	client := &Client{
		dispatcher: NewDispatcher(httpClient, credentials, config.APIBaseURL, config.RESTBaseURL),
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.voice = NewVoiceClient(c.dispatcher)
	c.conversations = NewConversationsClient(c.dispatcher)
	c.account = NewAccountClient(c.dispatcher)
	c.sms = NewSMSClient(c.dispatcher)
}

// Dispatcher returns the dispatcher shared by the resource clients.
func (c *Client) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Voice implements api.Client.Voice.
func (c *Client) Voice() api.VoiceClient {
	return c.voice
}

// Conversations implements api.Client.Conversations.
func (c *Client) Conversations() api.ConversationsClient {
	return c.conversations
}

// Account implements api.Client.Account.
func (c *Client) Account() api.AccountClient {
	return c.account
}

// SMS implements api.Client.SMS.
func (c *Client) SMS() api.SMSClient {
	return c.sms
}

var _ api.Client = (*Client)(nil)
