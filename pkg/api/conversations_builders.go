package api

import (
	"maps"

	"github.com/fivetwenty-io/comms-client/internal/validation"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// UpdateConversationBuilder builds an UpdateConversationRequest.
type UpdateConversationBuilder struct {
	req UpdateConversationRequest
}

// NewUpdateConversation starts a partial update of the conversation id.
func NewUpdateConversation(id string) *UpdateConversationBuilder {
	return &UpdateConversationBuilder{req: UpdateConversationRequest{ID: id}}
}

// WithName renames the conversation.
func (b *UpdateConversationBuilder) WithName(name string) *UpdateConversationBuilder {
	b.req.Name = &name

	return b
}

// WithDisplayName sets the display name.
func (b *UpdateConversationBuilder) WithDisplayName(displayName string) *UpdateConversationBuilder {
	b.req.DisplayName = &displayName

	return b
}

// WithImageURL sets the image URL.
func (b *UpdateConversationBuilder) WithImageURL(imageURL string) *UpdateConversationBuilder {
	b.req.ImageURL = &imageURL

	return b
}

// WithTTL sets the seconds after which an empty conversation is deleted.
func (b *UpdateConversationBuilder) WithTTL(seconds int) *UpdateConversationBuilder {
	b.properties().TTL = &seconds

	return b
}

// WithCustomData sets one custom data entry.
func (b *UpdateConversationBuilder) WithCustomData(key string, value any) *UpdateConversationBuilder {
	properties := b.properties()
	if properties.CustomData == nil {
		properties.CustomData = make(map[string]any)
	}

	properties.CustomData[key] = value

	return b
}

func (b *UpdateConversationBuilder) properties() *ConversationProperties {
	if b.req.Properties == nil {
		b.req.Properties = &ConversationProperties{}
	}

	return b.req.Properties
}

// Build validates the builder and returns the request.
func (b *UpdateConversationBuilder) Build() (*UpdateConversationRequest, error) {
	req := b.req
	if b.req.Properties != nil {
		properties := *b.req.Properties
		properties.CustomData = maps.Clone(b.req.Properties.CustomData)
		req.Properties = &properties
	}

	var checks []error

	if req.ID == "" {
		checks = append(checks, comms.NewPreconditionError("id", "is required"))
	}

	if req.Name == nil && req.DisplayName == nil && req.ImageURL == nil && req.Properties == nil {
		checks = append(checks, comms.NewPreconditionError("", "at least one field must be set"))
	}

	err := validation.Join(append(checks, validation.Struct(req))...)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// UpdateMemberBuilder builds an UpdateMemberRequest.
type UpdateMemberBuilder struct {
	req UpdateMemberRequest
}

// NewUpdateMember starts a state change of a conversation member.
func NewUpdateMember(conversationID, memberID string) *UpdateMemberBuilder {
	return &UpdateMemberBuilder{req: UpdateMemberRequest{ConversationID: conversationID, MemberID: memberID}}
}

// WithState sets the target state.
func (b *UpdateMemberBuilder) WithState(state MemberState) *UpdateMemberBuilder {
	b.req.State = state

	return b
}

// WithFrom sets the member performing the change.
func (b *UpdateMemberBuilder) WithFrom(memberID string) *UpdateMemberBuilder {
	b.req.From = memberID

	return b
}

// WithReason explains a leave. Only valid with MemberLeft.
func (b *UpdateMemberBuilder) WithReason(code, text string) *UpdateMemberBuilder {
	b.req.Reason = &LeaveReason{Code: code, Text: text}

	return b
}

// Build validates the builder and returns the request.
func (b *UpdateMemberBuilder) Build() (*UpdateMemberRequest, error) {
	req := b.req
	if b.req.Reason != nil {
		reason := *b.req.Reason
		req.Reason = &reason
	}

	var checks []error

	if req.ConversationID == "" {
		checks = append(checks, comms.NewPreconditionError("conversation_id", "is required"))
	}

	if req.MemberID == "" {
		checks = append(checks, comms.NewPreconditionError("member_id", "is required"))
	}

	if req.Reason != nil && req.State != MemberLeft {
		checks = append(checks, comms.NewPreconditionError("reason", "is only allowed when state is left"))
	}

	err := validation.Join(append(checks, validation.Struct(req))...)
	if err != nil {
		return nil, err
	}

	return &req, nil
}
