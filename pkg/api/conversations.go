package api

import (
	"time"

	"github.com/fivetwenty-io/comms-client/pkg/events"
)

// Conversation represents a conversation.
type Conversation struct {
	ID          string                  `json:"id"                     yaml:"id"`
	Name        string                  `json:"name"                   yaml:"name"`
	DisplayName string                  `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	ImageURL    string                  `json:"image_url,omitempty"    yaml:"image_url,omitempty"`
	State       string                  `json:"state,omitempty"        yaml:"state,omitempty"`
	SequenceID  int64                   `json:"sequence_number"        yaml:"sequence_number"`
	Timestamp   *ConversationTimestamp  `json:"timestamp,omitempty"    yaml:"timestamp,omitempty"`
	Properties  *ConversationProperties `json:"properties,omitempty"   yaml:"properties,omitempty"`
	Links       Links                   `json:"_links,omitempty"       yaml:"links,omitempty"`
}

// ConversationTimestamp records conversation lifecycle times.
type ConversationTimestamp struct {
	Created   *time.Time `json:"created,omitempty"   yaml:"created,omitempty"`
	Updated   *time.Time `json:"updated,omitempty"   yaml:"updated,omitempty"`
	Destroyed *time.Time `json:"destroyed,omitempty" yaml:"destroyed,omitempty"`
}

// ConversationProperties are the tunable properties of a conversation.
type ConversationProperties struct {
	TTL        *int           `json:"ttl,omitempty"         yaml:"ttl,omitempty"         validate:"omitempty,gte=0"`
	CustomData map[string]any `json:"custom_data,omitempty" yaml:"custom_data,omitempty"`
}

// UpdateConversationRequest is a partial update: only set fields are sent.
// Build it with NewUpdateConversation.
type UpdateConversationRequest struct {
	ID          string                  `json:"-"                      yaml:"id"`
	Name        *string                 `json:"name,omitempty"         yaml:"name,omitempty"`
	DisplayName *string                 `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	ImageURL    *string                 `json:"image_url,omitempty"    yaml:"image_url,omitempty"    validate:"omitempty,url"`
	Properties  *ConversationProperties `json:"properties,omitempty"   yaml:"properties,omitempty"`
}

// ListEventsRequest selects a page of a conversation's events.
type ListEventsRequest struct {
	ConversationID string `json:"-"                                yaml:"conversation_id"`
	StartID        *int64 `json:"start_id,omitempty"               yaml:"start_id,omitempty"               validate:"omitempty,gte=0"`
	EndID          *int64 `json:"end_id,omitempty"                 yaml:"end_id,omitempty"                 validate:"omitempty,gte=0"`
	EventType      string `json:"event_type,omitempty"             yaml:"event_type,omitempty"`
	PageSize       *int   `json:"page_size,omitempty"              yaml:"page_size,omitempty"              validate:"omitempty,gte=1,lte=100"`
	Order          Order  `json:"order,omitempty"                  yaml:"order,omitempty"                  validate:"omitempty,oneof=asc desc"`
	Cursor         string `json:"cursor,omitempty"                 yaml:"cursor,omitempty"`
	ExcludeDeleted *bool  `json:"exclude_deleted_events,omitempty" yaml:"exclude_deleted_events,omitempty"`
}

// EventsPage is one page of conversation events, each decoded to its variant.
type EventsPage struct {
	PageSize int            `json:"page_size" yaml:"page_size"`
	Links    Links          `json:"_links"    yaml:"links"`
	Embedded EventsEmbedded `json:"_embedded" yaml:"embedded"`
}

// EventsEmbedded holds the events of a page.
type EventsEmbedded struct {
	Events events.List `json:"events" yaml:"-"`
}

// MemberState is the state of a conversation member.
type MemberState string

// Member states.
const (
	MemberJoined  MemberState = "joined"
	MemberInvited MemberState = "invited"
	MemberLeft    MemberState = "left"
)

// Member represents a conversation member.
type Member struct {
	ID             string                `json:"id"                        yaml:"id"`
	ConversationID string                `json:"conversation_id,omitempty" yaml:"conversation_id,omitempty"`
	State          MemberState           `json:"state"                     yaml:"state"`
	Timestamp      *MemberTimestamp      `json:"timestamp,omitempty"       yaml:"timestamp,omitempty"`
	Channel        *events.MemberChannel `json:"channel,omitempty"         yaml:"-"`
	Media          *events.Media         `json:"media,omitempty"           yaml:"media,omitempty"`
	Embedded       *MemberEmbedded       `json:"_embedded,omitempty"       yaml:"embedded,omitempty"`
	Links          Links                 `json:"_links,omitempty"          yaml:"links,omitempty"`
}

// MemberTimestamp records member state transitions.
type MemberTimestamp struct {
	Invited *time.Time `json:"invited,omitempty" yaml:"invited,omitempty"`
	Joined  *time.Time `json:"joined,omitempty"  yaml:"joined,omitempty"`
	Left    *time.Time `json:"left,omitempty"    yaml:"left,omitempty"`
}

// MemberEmbedded carries the user behind a member.
type MemberEmbedded struct {
	User *events.UserRef `json:"user,omitempty" yaml:"user,omitempty"`
}

// LeaveReason explains why a member left.
type LeaveReason struct {
	Code string `json:"code,omitempty" yaml:"code,omitempty"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// UpdateMemberRequest changes a member's state. Build it with NewUpdateMember.
type UpdateMemberRequest struct {
	ConversationID string       `json:"-"                yaml:"conversation_id"`
	MemberID       string       `json:"-"                yaml:"member_id"`
	State          MemberState  `json:"state"            yaml:"state"            validate:"required,oneof=joined invited left"`
	From           string       `json:"from,omitempty"   yaml:"from,omitempty"`
	Reason         *LeaveReason `json:"reason,omitempty" yaml:"reason,omitempty"`
}
