package events

import (
	"encoding/json"
	"strings"
)

// AudioPlayBody is the body of audio:play.
type AudioPlayBody struct {
	StreamURL []string `json:"stream_url,omitempty" validate:"required,min=1,dive,url"`
	Level     *float64 `json:"level,omitempty"      validate:"omitempty,gte=-1,lte=1"`
	Loop      *int     `json:"loop,omitempty"       validate:"omitempty,gte=0"`
	PlayID    string   `json:"play_id,omitempty"`
}

// AudioPlayEvent streams audio into a conversation.
type AudioPlayEvent struct {
	Common
	Body AudioPlayBody
}

// AudioPlayStatusBody is the body of audio:play:stop and audio:play:done.
type AudioPlayStatusBody struct {
	PlayID string `json:"play_id,omitempty"`
}

// AudioPlayStopEvent stops a running audio:play.
type AudioPlayStopEvent struct {
	Common
	Body AudioPlayStatusBody
}

// AudioPlayDoneEvent reports that an audio:play finished.
type AudioPlayDoneEvent struct {
	Common
	Body AudioPlayStatusBody
}

// AudioSayBody is the body of audio:say.
type AudioSayBody struct {
	Text      string   `json:"text,omitempty"       validate:"required"`
	Level     *float64 `json:"level,omitempty"      validate:"omitempty,gte=-1,lte=1"`
	Loop      *int     `json:"loop,omitempty"       validate:"omitempty,gte=0"`
	Queue     *bool    `json:"queue,omitempty"`
	VoiceName string   `json:"voice_name,omitempty"`
	SSML      *bool    `json:"ssml,omitempty"`
	Language  string   `json:"language,omitempty"`
	Style     *int     `json:"style,omitempty"      validate:"omitempty,gte=0"`
	Premium   *bool    `json:"premium,omitempty"`
	SayID     string   `json:"say_id,omitempty"`
}

// AudioSayEvent speaks text into a conversation.
type AudioSayEvent struct {
	Common
	Body AudioSayBody
}

// AudioSayStatusBody is the body of audio:say:stop and audio:say:done.
type AudioSayStatusBody struct {
	SayID string `json:"say_id,omitempty"`
}

// AudioSayStopEvent stops a running audio:say.
type AudioSayStopEvent struct {
	Common
	Body AudioSayStatusBody
}

// AudioSayDoneEvent reports that an audio:say finished.
type AudioSayDoneEvent struct {
	Common
	Body AudioSayStatusBody
}

// AudioDTMFBody is the body of audio:dtmf.
type AudioDTMFBody struct {
	Digit    string `json:"digit,omitempty"`
	DTMFSeq  *int   `json:"dtmf_seq,omitempty"`
	Method   string `json:"method,omitempty"`
	Duration *int   `json:"duration,omitempty"`
}

// AudioDTMFEvent reports keypad input.
type AudioDTMFEvent struct {
	Common
	Body AudioDTMFBody
}

// AudioRecordBody is the body of audio:record.
type AudioRecordBody struct {
	Validity     *int   `json:"validity,omitempty"`
	Streamed     *bool  `json:"streamed,omitempty"`
	Format       string `json:"format,omitempty"`
	BeepStart    *bool  `json:"beep_start,omitempty"`
	BeepEnd      *bool  `json:"beep_end,omitempty"`
	DetectSpeech *bool  `json:"detect_speech,omitempty"`
	Split        string `json:"split,omitempty"`
	Multitrack   *bool  `json:"multitrack,omitempty"`
	Channels     *int   `json:"channels,omitempty"`
}

// AudioRecordEvent starts a recording.
type AudioRecordEvent struct {
	Common
	Body AudioRecordBody
}

// MessageEvent carries a message; Body is selected by message_type.
type MessageEvent struct {
	Common
	Body MessageBody
}

// MessageStatusBody is the body of the message:* status events.
type MessageStatusBody struct {
	EventID *int64 `json:"event_id,omitempty"`
}

// MessageStatusEvent is one of message:submitted, message:delivered,
// message:rejected, message:undeliverable and message:seen.
type MessageStatusEvent struct {
	Common
	Status Tag
	Body   MessageStatusBody
}

// MemberEventBody is the body of member:joined, member:invited and member:left.
type MemberEventBody struct {
	MemberID string         `json:"member_id,omitempty"`
	User     *UserRef       `json:"user,omitempty"`
	Channel  *MemberChannel `json:"channel,omitempty"`
	Media    *Media         `json:"media,omitempty"`
}

// MemberEvent reports a membership change. Kind is TagMemberJoined,
// TagMemberInvited or TagMemberLeft.
type MemberEvent struct {
	Common
	Kind Tag
	Body MemberEventBody
}

// Media is a member's media state.
type Media struct {
	Audio     *bool `json:"audio,omitempty"`
	Enabled   *bool `json:"enabled,omitempty"`
	Muted     *bool `json:"muted,omitempty"`
	Earmuffed *bool `json:"earmuffed,omitempty"`
}

// MemberMediaBody is the body of member:media.
type MemberMediaBody struct {
	Media *Media `json:"media,omitempty"`
}

// MemberMediaEvent reports a change in a member's media state.
type MemberMediaEvent struct {
	Common
	Body MemberMediaBody
}

// EphemeralEvent is delivered to connected clients and not persisted.
type EphemeralEvent struct {
	Common
	Body map[string]any
}

// EventDeleteBody is the body of event:delete.
type EventDeleteBody struct {
	EventID *int64 `json:"event_id,omitempty"`
}

// EventDeleteEvent reports the deletion of another event.
type EventDeleteEvent struct {
	Common
	Body EventDeleteBody
}

// CustomEvent is an application-defined event. Suffix is part of its type:
// custom:widget-click and custom:other-click are different events. Fields
// holds top-level members other than the common ones and body; encoding
// writes them back.
type CustomEvent struct {
	Common
	Suffix string
	Body   map[string]any
	Fields Fields
}

// GenericEvent is a registered event whose body is not modelled.
type GenericEvent struct {
	Common
	Kind Tag
	Body map[string]any
}

// UnknownEvent is an event whose type is not registered. Fields holds every
// member except type, so encoding it reproduces the original object.
type UnknownEvent struct {
	WireType string
	Fields   Fields
}

func (e *AudioPlayEvent) Type() string     { return WireType(TagAudioPlay) }
func (e *AudioPlayStopEvent) Type() string { return WireType(TagAudioPlayStop) }
func (e *AudioPlayDoneEvent) Type() string { return WireType(TagAudioPlayDone) }
func (e *AudioSayEvent) Type() string      { return WireType(TagAudioSay) }
func (e *AudioSayStopEvent) Type() string  { return WireType(TagAudioSayStop) }
func (e *AudioSayDoneEvent) Type() string  { return WireType(TagAudioSayDone) }
func (e *AudioDTMFEvent) Type() string     { return WireType(TagAudioDTMF) }
func (e *AudioRecordEvent) Type() string   { return WireType(TagAudioRecord) }
func (e *MessageEvent) Type() string       { return WireType(TagMessage) }
func (e *MessageStatusEvent) Type() string { return WireType(e.Status) }
func (e *MemberEvent) Type() string        { return WireType(e.Kind) }
func (e *MemberMediaEvent) Type() string   { return WireType(TagMemberMedia) }
func (e *EphemeralEvent) Type() string     { return WireType(TagEphemeral) }
func (e *EventDeleteEvent) Type() string   { return WireType(TagEventDelete) }
func (e *CustomEvent) Type() string        { return CustomPrefix + e.Suffix }
func (e *GenericEvent) Type() string       { return WireType(e.Kind) }
func (e *UnknownEvent) Type() string       { return e.WireType }

func (e *AudioPlayEvent) Tag() Tag     { return TagAudioPlay }
func (e *AudioPlayStopEvent) Tag() Tag { return TagAudioPlayStop }
func (e *AudioPlayDoneEvent) Tag() Tag { return TagAudioPlayDone }
func (e *AudioSayEvent) Tag() Tag      { return TagAudioSay }
func (e *AudioSayStopEvent) Tag() Tag  { return TagAudioSayStop }
func (e *AudioSayDoneEvent) Tag() Tag  { return TagAudioSayDone }
func (e *AudioDTMFEvent) Tag() Tag     { return TagAudioDTMF }
func (e *AudioRecordEvent) Tag() Tag   { return TagAudioRecord }
func (e *MessageEvent) Tag() Tag       { return TagMessage }
func (e *MessageStatusEvent) Tag() Tag { return e.Status }
func (e *MemberEvent) Tag() Tag        { return e.Kind }
func (e *MemberMediaEvent) Tag() Tag   { return TagMemberMedia }
func (e *EphemeralEvent) Tag() Tag     { return TagEphemeral }
func (e *EventDeleteEvent) Tag() Tag   { return TagEventDelete }
func (e *CustomEvent) Tag() Tag        { return TagCustom }
func (e *GenericEvent) Tag() Tag       { return e.Kind }
func (e *UnknownEvent) Tag() Tag       { return TagUnknown }

func (e *AudioPlayEvent) payload() any     { return e.Body }
func (e *AudioPlayStopEvent) payload() any { return e.Body }
func (e *AudioPlayDoneEvent) payload() any { return e.Body }
func (e *AudioSayEvent) payload() any      { return e.Body }
func (e *AudioSayStopEvent) payload() any  { return e.Body }
func (e *AudioSayDoneEvent) payload() any  { return e.Body }
func (e *AudioDTMFEvent) payload() any     { return e.Body }
func (e *AudioRecordEvent) payload() any   { return e.Body }
func (e *MessageEvent) payload() any       { return e.Body }
func (e *MessageStatusEvent) payload() any { return e.Body }
func (e *MemberEvent) payload() any        { return e.Body }
func (e *MemberMediaEvent) payload() any   { return e.Body }
func (e *EphemeralEvent) payload() any     { return e.Body }
func (e *EventDeleteEvent) payload() any   { return e.Body }
func (e *CustomEvent) payload() any        { return e.Body }
func (e *GenericEvent) payload() any       { return e.Body }
func (e *UnknownEvent) payload() any       { return nil }

// Header decodes the common attributes from Fields. Members that do not have
// the expected shape are left unset.
func (e *UnknownEvent) Header() Common {
	var c Common

	_ = decodeField(e.Fields, "id", &c.ID)
	_ = decodeField(e.Fields, "from", &c.From)
	_ = decodeField(e.Fields, "timestamp", &c.Timestamp)
	_ = decodeField(e.Fields, "_embedded", &c.Embedded)

	return c
}

// Field returns the raw value of the named member.
func (e *UnknownEvent) Field(name string) (json.RawMessage, bool) {
	raw, ok := e.Fields[name]

	return raw, ok
}

// Namespace returns the part of the type before the first ':', for example
// "rtc" for rtc:transfer or "custom" for custom:widget-click.
func Namespace(e Event) string {
	typ := e.Type()
	if i := strings.IndexByte(typ, ':'); i >= 0 {
		return typ[:i]
	}

	return typ
}
