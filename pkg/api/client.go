package api

import (
	"context"

	"github.com/fivetwenty-io/comms-client/pkg/events"
)

// VoiceClient manages calls.
type VoiceClient interface {
	CreateCall(ctx context.Context, req *CreateCallRequest) (*CallResponse, error)
	GetCall(ctx context.Context, uuid string) (*Call, error)
	ListCalls(ctx context.Context, req *ListCallsRequest) (*CallsPage, error)
	UpdateCall(ctx context.Context, req *UpdateCallRequest) error
	StartStream(ctx context.Context, req *StreamRequest) (*StreamResponse, error)
	StopStream(ctx context.Context, uuid string) (*StreamResponse, error)
}

// ConversationsClient manages conversations, their events and members.
type ConversationsClient interface {
	UpdateConversation(ctx context.Context, req *UpdateConversationRequest) (*Conversation, error)
	CreateEvent(ctx context.Context, conversationID string, event events.Event) (events.Event, error)
	GetEvent(ctx context.Context, conversationID, eventID string) (events.Event, error)
	ListEvents(ctx context.Context, req *ListEventsRequest) (*EventsPage, error)
	DeleteEvent(ctx context.Context, conversationID, eventID string) error
	GetMember(ctx context.Context, conversationID, memberID string) (*Member, error)
	UpdateMember(ctx context.Context, req *UpdateMemberRequest) (*Member, error)
}

// AccountClient reads account state.
type AccountClient interface {
	GetBalance(ctx context.Context) (*Balance, error)
}

// SMSClient sends text messages.
type SMSClient interface {
	Send(ctx context.Context, req *SendSMSRequest) (*SMSResponse, error)
}

// Client is the main interface for the communications API.
type Client interface {
	Voice() VoiceClient
	Conversations() ConversationsClient
	Account() AccountClient
	SMS() SMSClient
}
