package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// ErrNilEvent is returned when encoding a nil event.
var ErrNilEvent = errors.New("nil event")

//nolint:gochecknoglobals // Immutable after package init
var registry = newEventRegistry()

func newEventRegistry() *Registry[Event] {
	r := NewRegistry[Event]("type", func(wire string) string {
		tag, ok := CanonicalTag(wire)
		if !ok {
			return ""
		}

		return string(tag)
	})

	r.Register(string(TagAudioPlay), variant(func(c Common, b AudioPlayBody) Event { return &AudioPlayEvent{c, b} }))
	r.Register(string(TagAudioPlayStop), variant(func(c Common, b AudioPlayStatusBody) Event { return &AudioPlayStopEvent{c, b} }))
	r.Register(string(TagAudioPlayDone), variant(func(c Common, b AudioPlayStatusBody) Event { return &AudioPlayDoneEvent{c, b} }))
	r.Register(string(TagAudioSay), variant(func(c Common, b AudioSayBody) Event { return &AudioSayEvent{c, b} }))
	r.Register(string(TagAudioSayStop), variant(func(c Common, b AudioSayStatusBody) Event { return &AudioSayStopEvent{c, b} }))
	r.Register(string(TagAudioSayDone), variant(func(c Common, b AudioSayStatusBody) Event { return &AudioSayDoneEvent{c, b} }))
	r.Register(string(TagAudioDTMF), variant(func(c Common, b AudioDTMFBody) Event { return &AudioDTMFEvent{c, b} }))
	r.Register(string(TagAudioRecord), variant(func(c Common, b AudioRecordBody) Event { return &AudioRecordEvent{c, b} }))
	r.Register(string(TagMemberMedia), variant(func(c Common, b MemberMediaBody) Event { return &MemberMediaEvent{c, b} }))
	r.Register(string(TagEphemeral), variant(func(c Common, b map[string]any) Event { return &EphemeralEvent{c, b} }))
	r.Register(string(TagEventDelete), variant(func(c Common, b EventDeleteBody) Event { return &EventDeleteEvent{c, b} }))
	r.Register(string(TagMessage), decodeMessageEvent)

	for _, tag := range []Tag{TagMessageSubmitted, TagMessageDelivered, TagMessageRejected, TagMessageUndelivered, TagMessageSeen} {
		status := tag
		r.Register(string(tag), variant(func(c Common, b MessageStatusBody) Event {
			return &MessageStatusEvent{Common: c, Status: status, Body: b}
		}))
	}

	for _, tag := range []Tag{TagMemberJoined, TagMemberInvited, TagMemberLeft} {
		kind := tag
		r.Register(string(tag), variant(func(c Common, b MemberEventBody) Event {
			return &MemberEvent{Common: c, Kind: kind, Body: b}
		}))
	}

	for _, tag := range genericTags {
		kind := tag
		r.Register(string(tag), variant(func(c Common, b map[string]any) Event {
			return &GenericEvent{Common: c, Kind: kind, Body: b}
		}))
	}

	r.RegisterFamily(CustomPrefix, func(wire string, fields Fields, _ DecodeContext) (Event, error) {
		c, err := decodeCommon(fields)
		if err != nil {
			return nil, err
		}

		event := &CustomEvent{Common: c, Suffix: wire[len(CustomPrefix):], Fields: extraFields(fields)}

		err = decodeField(fields, "body", &event.Body)
		if err != nil {
			return nil, err
		}

		return event, nil
	})

	r.Fallback(func(wire string, fields Fields, _ DecodeContext) (Event, error) {
		delete(fields, "type")

		return &UnknownEvent{WireType: wire, Fields: fields}, nil
	})

	return r
}

//nolint:gochecknoglobals // Immutable after package init
var genericTags = []Tag{
	TagAppKnocking,
	TagAudioASRDone,
	TagAudioASRRecordDone,
	TagAudioEarmuffOff,
	TagAudioEarmuffOn,
	TagAudioMuteOff,
	TagAudioMuteOn,
	TagAudioRecordDone,
	TagAudioRingingStart,
	TagAudioSpeakingOff,
	TagAudioSpeakingOn,
	TagConversationUpdated,
	TagLegStatusUpdate,
	TagRTCAnswer,
	TagRTCAnswered,
	TagRTCHangup,
	TagRTCOffer,
	TagRTCRinging,
	TagRTCStatus,
	TagRTCTransfer,
	TagSIPAMDMachine,
	TagSIPAnswered,
	TagSIPHangup,
	TagSIPMachine,
	TagSIPRinging,
	TagSIPStatus,
}

// Registered returns the tags with a registered variant, sorted.
func Registered() []Tag {
	keys := registry.Keys()
	tags := make([]Tag, 0, len(keys))

	for _, key := range keys {
		tags = append(tags, Tag(key))
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	return tags
}

// IsRegistered reports whether wire selects a registered variant. Custom
// types always do.
func IsRegistered(wire string) bool {
	if IsCustomType(wire) {
		return true
	}

	tag, ok := CanonicalTag(wire)

	return ok && registry.Has(string(tag))
}

// Decode decodes one event. Unregistered types decode to *UnknownEvent; a
// missing type or a body that does not fit its variant fails with
// *comms.MalformedPayloadError.
func Decode(data []byte) (Event, error) {
	return registry.Decode(data, DecodeContext{})
}

// Encode renders an event with its wire type.
func Encode(event Event) ([]byte, error) {
	if event == nil {
		return nil, ErrNilEvent
	}

	if unknown, ok := event.(*UnknownEvent); ok {
		return marshalWithDiscriminator("type", unknown.WireType, unknown.Fields)
	}

	body, err := json.Marshal(event.payload())
	if err != nil {
		return nil, fmt.Errorf("encoding %s body: %w", event.Type(), err)
	}

	if bytes.Equal(body, []byte("null")) {
		body = nil
	}

	data, err := json.Marshal(envelope{Type: event.Type(), Common: event.Header(), Body: body})
	if err != nil {
		return nil, err
	}

	if custom, ok := event.(*CustomEvent); ok && len(custom.Fields) > 0 {
		return mergeFields(data, custom.Fields)
	}

	return data, nil
}

// envelopeMembers are the members an envelope encodes itself.
//
//nolint:gochecknoglobals // Fixed member set
var envelopeMembers = []string{"type", "id", "from", "timestamp", "_embedded", "body"}

// extraFields returns the members of fields outside the envelope, or nil.
func extraFields(fields Fields) Fields {
	var extra Fields

	for name, raw := range fields {
		if slices.Contains(envelopeMembers, name) {
			continue
		}

		if extra == nil {
			extra = make(Fields)
		}

		extra[name] = raw
	}

	return extra
}

// mergeFields adds extra members to an encoded envelope. Envelope members win.
func mergeFields(data []byte, extra Fields) ([]byte, error) {
	fields, err := SplitObject(data)
	if err != nil {
		return nil, err
	}

	for name, raw := range extra {
		if _, taken := fields[name]; !taken {
			fields[name] = raw
		}
	}

	return json.Marshal(fields)
}

type envelope struct {
	Type string `json:"type"`
	Common
	Body json.RawMessage `json:"body,omitempty"`
}

// List is a sequence of events that encodes and decodes through the codec.
type List []Event

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = nil

		return nil
	}

	if len(trimmed) == 0 || trimmed[0] != '[' {
		return comms.NewMalformedPayloadError("", ErrNotAnArray)
	}

	var raws []json.RawMessage

	err := json.Unmarshal(trimmed, &raws)
	if err != nil {
		return comms.NewMalformedPayloadError("", err)
	}

	decoded := make(List, 0, len(raws))

	for i, raw := range raws {
		event, err := Decode(raw)
		if err != nil {
			return scopeField(fmt.Sprintf("[%d]", i), err)
		}

		decoded = append(decoded, event)
	}

	*l = decoded

	return nil
}

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	raws := make([]json.RawMessage, 0, len(l))

	for _, event := range l {
		raw, err := Encode(event)
		if err != nil {
			return nil, err
		}

		raws = append(raws, raw)
	}

	return json.Marshal(raws)
}

func variant[B any](construct func(Common, B) Event) DecodeFunc[Event] {
	return func(_ string, fields Fields, _ DecodeContext) (Event, error) {
		c, err := decodeCommon(fields)
		if err != nil {
			return nil, err
		}

		var body B

		err = decodeField(fields, "body", &body)
		if err != nil {
			return nil, err
		}

		return construct(c, body), nil
	}
}

func decodeMessageEvent(_ string, fields Fields, _ DecodeContext) (Event, error) {
	c, err := decodeCommon(fields)
	if err != nil {
		return nil, err
	}

	event := &MessageEvent{Common: c}

	if raw, ok := fields["body"]; ok && !isNull(raw) {
		event.Body, err = messageRegistry.Decode(raw, DecodeContext{})
		if err != nil {
			return nil, scopeField("body", err)
		}
	}

	return event, nil
}

func decodeCommon(fields Fields) (Common, error) {
	var c Common

	members := []struct {
		name string
		dst  any
	}{
		{"id", &c.ID},
		{"from", &c.From},
		{"timestamp", &c.Timestamp},
		{"_embedded", &c.Embedded},
	}

	for _, m := range members {
		err := decodeField(fields, m.name, m.dst)
		if err != nil {
			return Common{}, err
		}
	}

	return c, nil
}

// decodeAs rebuilds the object from fields and unmarshals it into T.
func decodeAs[T any](fields Fields) (T, error) {
	var value T

	raw, err := json.Marshal(fields)
	if err != nil {
		return value, comms.NewMalformedPayloadError("", err)
	}

	err = unmarshalNumbers(raw, &value)
	if err != nil {
		return value, comms.NewMalformedPayloadError("", err)
	}

	return value, nil
}

// marshalWithDiscriminator writes the discriminator and then every preserved
// member. encoding/json sorts map keys, so output is stable.
func marshalWithDiscriminator(field, value string, fields Fields) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(fields)+1)
	for name, raw := range fields {
		out[name] = raw
	}

	discriminator, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	out[field] = discriminator

	return json.Marshal(out)
}

// scopeField prefixes the field of a malformed payload error with name so
// nested failures point at their location.
func scopeField(name string, err error) error {
	var malformed *comms.MalformedPayloadError
	if errors.As(err, &malformed) {
		field := name
		if malformed.Field != "" {
			field = name + "." + malformed.Field
		}

		return comms.NewMalformedPayloadError(field, malformed.Err)
	}

	return comms.NewMalformedPayloadError(name, err)
}
