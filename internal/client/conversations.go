package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/comms-client/internal/validation"
	"github.com/fivetwenty-io/comms-client/pkg/api"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
	"github.com/fivetwenty-io/comms-client/pkg/events"
)

type eventRef struct {
	ConversationID string `json:"-"`
	EventID        string `json:"-"`
}

type eventCreate struct {
	ConversationID string
	Event          events.Event
}

type memberRef struct {
	ConversationID string `json:"-"`
	MemberID       string `json:"-"`
}

func conversationPath(id string) Path {
	return NewPath("/v1/conversations/{id}", "id", id)
}

func eventsPath(conversationID string) Path {
	return NewPath("/v1/conversations/{id}/events", "id", conversationID)
}

func eventPath(r eventRef) Path {
	return NewPath("/v1/conversations/{id}/events/{event_id}", "id", r.ConversationID, "event_id", r.EventID)
}

func memberPath(conversationID, memberID string) Path {
	return NewPath("/v1/conversations/{id}/members/{member_id}", "id", conversationID, "member_id", memberID)
}

var (
	updateConversationEndpoint = MustEndpoint(Spec[*api.UpdateConversationRequest, api.Conversation]{
		Method: comms.MethodPatch,
		Auth:   bearerOnly,
		Path:   func(r *api.UpdateConversationRequest) Path { return conversationPath(r.ID) },
	})

	createEventEndpoint = MustEndpoint(Spec[eventCreate, events.Event]{
		Method: comms.MethodPost,
		Auth:   bearerOnly,
		Path:   func(r eventCreate) Path { return eventsPath(r.ConversationID) },
		Encode: func(r eventCreate) ([]byte, error) { return events.Encode(r.Event) },
		Decode: events.Decode,
	})

	getEventEndpoint = MustEndpoint(Spec[eventRef, events.Event]{
		Method: comms.MethodGet,
		Auth:   bearerOnly,
		Path:   eventPath,
		Decode: events.Decode,
	})

	listEventsEndpoint = MustEndpoint(Spec[*api.ListEventsRequest, api.EventsPage]{
		Method: comms.MethodGet,
		Auth:   bearerOnly,
		Path:   func(r *api.ListEventsRequest) Path { return eventsPath(r.ConversationID) },
	})

	deleteEventEndpoint = MustEndpoint(Spec[eventRef, comms.Empty]{
		Method: comms.MethodDelete,
		Auth:   bearerOnly,
		Path:   eventPath,
	})

	getMemberEndpoint = MustEndpoint(Spec[memberRef, api.Member]{
		Method: comms.MethodGet,
		Auth:   bearerOnly,
		Path:   func(r memberRef) Path { return memberPath(r.ConversationID, r.MemberID) },
	})

	updateMemberEndpoint = MustEndpoint(Spec[*api.UpdateMemberRequest, api.Member]{
		Method: comms.MethodPatch,
		Auth:   bearerOnly,
		Path:   func(r *api.UpdateMemberRequest) Path { return memberPath(r.ConversationID, r.MemberID) },
	})
)

// ConversationsClient implements api.ConversationsClient.
type ConversationsClient struct {
	dispatcher *Dispatcher
}

// NewConversationsClient creates a new conversations client.
func NewConversationsClient(dispatcher *Dispatcher) *ConversationsClient {
	return &ConversationsClient{dispatcher: dispatcher}
}

// UpdateConversation implements api.ConversationsClient.UpdateConversation.
func (c *ConversationsClient) UpdateConversation(ctx context.Context, req *api.UpdateConversationRequest) (*api.Conversation, error) {
	conversation, err := Execute(ctx, c.dispatcher, updateConversationEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("updating conversation: %w", err)
	}

	return &conversation, nil
}

// CreateEvent implements api.ConversationsClient.CreateEvent. The request
// body is the event's wire encoding and the response is decoded to its
// variant.
func (c *ConversationsClient) CreateEvent(ctx context.Context, conversationID string, event events.Event) (events.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("creating event: %w", comms.NewPreconditionError("event", "is required"))
	}

	created, err := Execute(ctx, c.dispatcher, createEventEndpoint, eventCreate{ConversationID: conversationID, Event: event})
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	return created, nil
}

// GetEvent implements api.ConversationsClient.GetEvent.
func (c *ConversationsClient) GetEvent(ctx context.Context, conversationID, eventID string) (events.Event, error) {
	event, err := Execute(ctx, c.dispatcher, getEventEndpoint, eventRef{ConversationID: conversationID, EventID: eventID})
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}

	return event, nil
}

// ListEvents implements api.ConversationsClient.ListEvents. It returns a
// single page; follow Links.Next with a cursor for more.
func (c *ConversationsClient) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.EventsPage, error) {
	if req == nil {
		return nil, fmt.Errorf("listing events: %w", comms.NewPreconditionError("", "request is required"))
	}

	err := validation.Struct(req)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	page, err := Execute(ctx, c.dispatcher, listEventsEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	return &page, nil
}

// DeleteEvent implements api.ConversationsClient.DeleteEvent.
func (c *ConversationsClient) DeleteEvent(ctx context.Context, conversationID, eventID string) error {
	_, err := Execute(ctx, c.dispatcher, deleteEventEndpoint, eventRef{ConversationID: conversationID, EventID: eventID})
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	return nil
}

// GetMember implements api.ConversationsClient.GetMember.
func (c *ConversationsClient) GetMember(ctx context.Context, conversationID, memberID string) (*api.Member, error) {
	member, err := Execute(ctx, c.dispatcher, getMemberEndpoint, memberRef{ConversationID: conversationID, MemberID: memberID})
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}

	return &member, nil
}

// UpdateMember implements api.ConversationsClient.UpdateMember.
func (c *ConversationsClient) UpdateMember(ctx context.Context, req *api.UpdateMemberRequest) (*api.Member, error) {
	member, err := Execute(ctx, c.dispatcher, updateMemberEndpoint, req)
	if err != nil {
		return nil, fmt.Errorf("updating member: %w", err)
	}

	return &member, nil
}
