package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/pkg/comms"
	"github.com/fivetwenty-io/comms-client/pkg/events"
)

func fullCommon() events.Common {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	return events.Common{
		ID:        comms.Ptr(int64(42)),
		From:      "MEM-63f61863-4a51-4f6b-86e1-46edebcf9356",
		Timestamp: &ts,
		Embedded: &events.Embedded{
			FromUser:   &events.UserRef{ID: "USR-1", Name: "alice", DisplayName: "Alice"},
			FromMember: &events.MemberRef{ID: "MEM-63f61863-4a51-4f6b-86e1-46edebcf9356"},
		},
	}
}

func representativeEvents() map[string]events.Event {
	full := fullCommon()
	boolTrue := true

	return map[string]events.Event{
		"audio play minimal": &events.AudioPlayEvent{Body: events.AudioPlayBody{StreamURL: []string{"https://example.com/a.mp3"}}},
		"audio play full": &events.AudioPlayEvent{Common: full, Body: events.AudioPlayBody{
			StreamURL: []string{"https://example.com/a.mp3", "https://example.com/b.mp3"},
			Level:     comms.Ptr(-0.5),
			Loop:      comms.Ptr(0),
			PlayID:    "play-1",
		}},
		"audio play stop":  &events.AudioPlayStopEvent{Common: full, Body: events.AudioPlayStatusBody{PlayID: "play-1"}},
		"audio play done":  &events.AudioPlayDoneEvent{Body: events.AudioPlayStatusBody{PlayID: "play-1"}},
		"audio say minimal": &events.AudioSayEvent{Body: events.AudioSayBody{Text: "hello"}},
		"audio say full": &events.AudioSayEvent{Common: full, Body: events.AudioSayBody{
			Text: "<speak>hi</speak>", Level: comms.Ptr(1.0), Loop: comms.Ptr(2), Queue: &boolTrue,
			VoiceName: "Amy", SSML: &boolTrue, Language: "en-GB", Style: comms.Ptr(1), Premium: &boolTrue, SayID: "say-1",
		}},
		"audio say stop": &events.AudioSayStopEvent{Body: events.AudioSayStatusBody{SayID: "say-1"}},
		"audio say done": &events.AudioSayDoneEvent{Common: full, Body: events.AudioSayStatusBody{SayID: "say-1"}},
		"audio dtmf":     &events.AudioDTMFEvent{Common: full, Body: events.AudioDTMFBody{Digit: "5", DTMFSeq: comms.Ptr(3), Method: "in-band", Duration: comms.Ptr(250)}},
		"audio record": &events.AudioRecordEvent{Body: events.AudioRecordBody{
			Validity: comms.Ptr(60), Streamed: &boolTrue, Format: "mp3", Split: "conversation", Channels: comms.Ptr(2),
		}},
		"text message":    &events.MessageEvent{Common: full, Body: events.TextMessage{Text: "hi there"}},
		"image message":   &events.MessageEvent{Body: events.ImageMessage{Image: events.Attachment{URL: "https://example.com/cat.png"}}},
		"location message": &events.MessageEvent{Body: events.LocationMessage{Location: events.Location{Latitude: "51.5", Longitude: "-0.12", Name: "Office"}}},
		"template message": &events.MessageEvent{Body: events.TemplateMessage{Template: events.Template{Name: "otp", Parameters: []string{"1234"}}}},
		"custom message":   &events.MessageEvent{Body: events.CustomMessage{Custom: map[string]any{"card": "hero"}}},
		"message without body": &events.MessageEvent{Common: full},
		"message delivered":    &events.MessageStatusEvent{Common: full, Status: events.TagMessageDelivered, Body: events.MessageStatusBody{EventID: comms.Ptr(int64(7))}},
		"message seen":         &events.MessageStatusEvent{Status: events.TagMessageSeen},
		"member joined": &events.MemberEvent{Common: full, Kind: events.TagMemberJoined, Body: events.MemberEventBody{
			MemberID: "MEM-1",
			User:     &events.UserRef{ID: "USR-1", Name: "alice"},
			Channel: &events.MemberChannel{
				Type:  events.ChannelPhone,
				From:  events.PhoneEndpoint{Number: "447700900000"},
				To:    events.PhoneEndpoint{Number: "447700900001"},
				LegID: "leg-1",
			},
			Media: &events.Media{Audio: &boolTrue},
		}},
		"member left":     &events.MemberEvent{Kind: events.TagMemberLeft, Body: events.MemberEventBody{MemberID: "MEM-1"}},
		"member media":    &events.MemberMediaEvent{Body: events.MemberMediaBody{Media: &events.Media{Muted: &boolTrue}}},
		"ephemeral":       &events.EphemeralEvent{Common: full, Body: map[string]any{"typing": true}},
		"event delete":    &events.EventDeleteEvent{Body: events.EventDeleteBody{EventID: comms.Ptr(int64(9))}},
		"custom":          &events.CustomEvent{Common: full, Suffix: "widget-click", Body: map[string]any{"widget": "buy", "count": json.Number("2")}},
		"custom no body":  &events.CustomEvent{Suffix: "ping"},
		"custom extra members": &events.CustomEvent{Suffix: "order", Fields: events.Fields{
			"foo": json.RawMessage(`1`), "meta": json.RawMessage(`{"a":[1,2]}`),
		}},
		"generic rtc":     &events.GenericEvent{Common: full, Kind: events.TagRTCTransfer, Body: map[string]any{"was_member": "MEM-2"}},
		"generic no body": &events.GenericEvent{Kind: events.TagLegStatusUpdate},
		"sip amd machine": &events.GenericEvent{Kind: events.TagSIPAMDMachine, Body: map[string]any{"channel": map[string]any{"id": "c-1"}}},
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for name, event := range representativeEvents() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded, err := events.Encode(event)
			require.NoError(t, err)

			decoded, err := events.Decode(encoded)
			require.NoError(t, err)

			if diff := cmp.Diff(event, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEveryRegisteredTagRoundTrips(t *testing.T) {
	t.Parallel()

	for _, tag := range events.Registered() {
		wire := events.WireType(tag)

		event, err := events.Decode([]byte(`{"type":"` + wire + `"}`))
		require.NoError(t, err, wire)
		assert.Equal(t, tag, event.Tag(), wire)
		assert.Equal(t, wire, event.Type())

		encoded, err := events.Encode(event)
		require.NoError(t, err)

		var envelope struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(encoded, &envelope))
		assert.Equal(t, wire, envelope.Type)
	}
}

func TestDecode_UnknownType(t *testing.T) {
	t.Parallel()

	input := `{"type":"totally:new:tag","foo":1,"nested":{"a":[1, 2]},"id":5}`

	event, err := events.Decode([]byte(input))
	require.NoError(t, err)

	unknown, ok := event.(*events.UnknownEvent)
	require.True(t, ok, "expected *UnknownEvent, got %T", event)
	assert.Equal(t, "totally:new:tag", unknown.Type())
	assert.Equal(t, events.TagUnknown, unknown.Tag())

	foo, ok := unknown.Field("foo")
	require.True(t, ok)
	assert.JSONEq(t, `1`, string(foo))
	assert.Equal(t, int64(5), *unknown.Header().ID)

	encoded, err := events.Encode(event)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(encoded))

	again, err := events.Decode(encoded)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(event, again))
}

func TestDecode_CustomIdentity(t *testing.T) {
	t.Parallel()

	click, err := events.Decode([]byte(`{"type":"custom:widget-click","body":{"x":1}}`))
	require.NoError(t, err)

	other, err := events.Decode([]byte(`{"type":"custom:other-click","body":{"x":1}}`))
	require.NoError(t, err)

	require.IsType(t, &events.CustomEvent{}, click)
	require.IsType(t, &events.CustomEvent{}, other)
	assert.Equal(t, "widget-click", click.(*events.CustomEvent).Suffix)
	assert.NotEqual(t, click.Type(), other.Type())
	assert.Equal(t, events.TagCustom, click.Tag())

	for wire, event := range map[string]events.Event{"custom:widget-click": click, "custom:other-click": other} {
		encoded, err := events.Encode(event)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"`+wire+`","body":{"x":1}}`, string(encoded))
	}
}

func TestDecode_CustomSuffixVerbatim(t *testing.T) {
	t.Parallel()

	event, err := events.Decode([]byte(`{"type":"custom:Widget_Click:v2"}`))
	require.NoError(t, err)
	assert.Equal(t, "custom:Widget_Click:v2", event.Type())
}

func TestDecode_CustomExtraMembers(t *testing.T) {
	t.Parallel()

	input := `{"type":"custom:widget-click","foo":1,"body":{"a":1},"id":3}`

	event, err := events.Decode([]byte(input))
	require.NoError(t, err)

	custom, ok := event.(*events.CustomEvent)
	require.True(t, ok, "got %T", event)
	assert.Equal(t, events.Fields{"foo": json.RawMessage(`1`)}, custom.Fields)
	assert.Equal(t, int64(3), *custom.ID)

	encoded, err := events.Encode(event)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(encoded))
}

func TestDecode_NonCanonicalSpellings(t *testing.T) {
	t.Parallel()

	for _, wire := range []string{"sip:amd:machine", "SIP:AMD_MACHINE", "audio_play", "AUDIO:PLAY", "Custom:widget"} {
		t.Run(wire, func(t *testing.T) {
			t.Parallel()

			input := `{"type":"` + wire + `","body":{"stream_url":["https://example.com/a.mp3"]}}`

			event, err := events.Decode([]byte(input))
			require.NoError(t, err)
			require.IsType(t, &events.UnknownEvent{}, event)
			assert.Equal(t, wire, event.Type())
			assert.False(t, events.IsRegistered(wire))

			encoded, err := events.Encode(event)
			require.NoError(t, err)
			assert.JSONEq(t, input, string(encoded))
		})
	}

	tag, ok := events.CanonicalTag("sip:amd_machine")
	assert.True(t, ok)
	assert.Equal(t, events.TagSIPAMDMachine, tag)
	assert.True(t, events.IsRegistered("audio:play"))
}

func TestDecode_LargeIntegers(t *testing.T) {
	t.Parallel()

	tests := []string{
		`{"type":"custom:counter","body":{"n":9007199254740993}}`,
		`{"type":"ephemeral","body":{"n":9007199254740993}}`,
		`{"type":"rtc:transfer","body":{"n":9007199254740993,"nested":{"m":12345678901234567890}}}`,
	}

	for _, input := range tests {
		event, err := events.Decode([]byte(input))
		require.NoError(t, err, input)

		encoded, err := events.Encode(event)
		require.NoError(t, err)
		assert.JSONEq(t, input, string(encoded))
		assert.Contains(t, string(encoded), "9007199254740993")
	}
}

func TestDecode_SIPAMDMachine(t *testing.T) {
	t.Parallel()

	event, err := events.Decode([]byte(`{"type":"sip:amd_machine","body":{}}`))
	require.NoError(t, err)
	assert.Equal(t, events.TagSIPAMDMachine, event.Tag())

	encoded, err := events.Encode(event)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"type":"sip:amd_machine"`)
	assert.NotContains(t, string(encoded), "sip:amd:machine")
}

func TestNormalizeType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wire string
		tag  events.Tag
	}{
		{"audio:play", events.TagAudioPlay},
		{"AUDIO:PLAY:STOP", events.TagAudioPlayStop},
		{"leg:status:update", events.TagLegStatusUpdate},
		{"sip:amd_machine", events.TagSIPAMDMachine},
		{"SIP:AMD_MACHINE", events.TagSIPAMDMachine},
		{"message:undeliverable", events.TagMessageUndelivered},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.tag, events.NormalizeType(tt.wire))
		})
	}

	assert.Equal(t, "sip:amd_machine", events.WireType(events.TagSIPAMDMachine))
	assert.Equal(t, "audio:play:stop", events.WireType(events.TagAudioPlayStop))
	assert.False(t, events.IsCustomType("Custom:x"))
	assert.False(t, events.IsCustomType("custom:"))
	assert.False(t, events.IsCustomType("customer:created"))
}

func TestDecode_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		field string
	}{
		{"missing type", `{"body":{"text":"hi"}}`, "type"},
		{"null type", `{"type":null}`, "type"},
		{"type not a string", `{"type":5}`, "type"},
		{"not an object", `["audio:play"]`, ""},
		{"invalid json", `{"type":`, ""},
		{"body shape", `{"type":"audio:play","body":{"loop":"forever"}}`, "body"},
		{"id shape", `{"type":"audio:play","id":"abc"}`, "id"},
		{"message without message_type", `{"type":"message","body":{"text":"hi"}}`, "body.message_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := events.Decode([]byte(tt.input))
			require.Error(t, err)
			require.ErrorIs(t, err, comms.ErrMalformedPayload)

			var malformed *comms.MalformedPayloadError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestMemberChannel_InheritsType(t *testing.T) {
	t.Parallel()

	input := `{"type":"member:joined","body":{"member_id":"MEM-1","channel":{` +
		`"type":"phone","from":{"number":"447700900000"},"to":{"type":"app","user":"USR-1"}}}}`

	event, err := events.Decode([]byte(input))
	require.NoError(t, err)

	member, ok := event.(*events.MemberEvent)
	require.True(t, ok)
	require.NotNil(t, member.Body.Channel)

	assert.Equal(t, events.PhoneEndpoint{Number: "447700900000"}, member.Body.Channel.From)
	assert.Equal(t, events.AppEndpoint{User: "USR-1"}, member.Body.Channel.To)

	encoded, err := events.Encode(event)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"from":{"type":"phone","number":"447700900000"}`)
}

func TestMemberChannel_EndpointWithoutAnyType(t *testing.T) {
	t.Parallel()

	var channel events.MemberChannel

	err := json.Unmarshal([]byte(`{"from":{"number":"447700900000"}}`), &channel)
	require.ErrorIs(t, err, comms.ErrMalformedPayload)

	var malformed *comms.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "from.type", malformed.Field)
}

func TestMemberChannel_MessagingAndUnknownEndpoints(t *testing.T) {
	t.Parallel()

	var channel events.MemberChannel

	err := json.Unmarshal([]byte(`{"type":"whatsapp","from":{"number":"447700900000"},"to":{"type":"carrier-pigeon","loft":"7"}}`), &channel)
	require.NoError(t, err)

	assert.Equal(t, events.NumberEndpoint{Kind: events.ChannelWhatsApp, Number: "447700900000"}, channel.From)

	unknown, ok := channel.To.(events.UnknownEndpoint)
	require.True(t, ok)
	assert.Equal(t, "carrier-pigeon", unknown.EndpointType())

	encoded, err := json.Marshal(channel)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"whatsapp","from":{"type":"whatsapp","number":"447700900000"},"to":{"type":"carrier-pigeon","loft":"7"}}`, string(encoded))
}

func TestDecodeMessage_Unknown(t *testing.T) {
	t.Parallel()

	body, err := events.DecodeMessage([]byte(`{"message_type":"sticker","sticker":{"id":"s-1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "sticker", body.MessageType())

	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message_type":"sticker","sticker":{"id":"s-1"}}`, string(encoded))
}

func TestList(t *testing.T) {
	t.Parallel()

	input := `[{"type":"audio:play","body":{"stream_url":["https://example.com/a.mp3"]}},` +
		`{"type":"custom:ping"},{"type":"brand:new","x":true}]`

	var list events.List
	require.NoError(t, json.Unmarshal([]byte(input), &list))
	require.Len(t, list, 3)
	assert.IsType(t, &events.AudioPlayEvent{}, list[0])
	assert.IsType(t, &events.CustomEvent{}, list[1])
	assert.IsType(t, &events.UnknownEvent{}, list[2])

	encoded, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(encoded))

	var broken events.List
	err = json.Unmarshal([]byte(`[{"type":"audio:play"},{"body":{}}]`), &broken)

	var malformed *comms.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "[1].type", malformed.Field)
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rtc", events.Namespace(&events.GenericEvent{Kind: events.TagRTCTransfer}))
	assert.Equal(t, "custom", events.Namespace(&events.CustomEvent{Suffix: "x"}))
	assert.Equal(t, "message", events.Namespace(&events.MessageEvent{}))
}
