package events

import (
	"github.com/fivetwenty-io/comms-client/internal/validation"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// AudioPlayBuilder builds an audio:play event. Setters only record values;
// Build validates them.
type AudioPlayBuilder struct {
	from string
	body AudioPlayBody
}

// NewAudioPlay starts an audio:play event.
func NewAudioPlay(streamURL ...string) *AudioPlayBuilder {
	return &AudioPlayBuilder{body: AudioPlayBody{StreamURL: streamURL}}
}

// WithFrom sets the member the event is sent as.
func (b *AudioPlayBuilder) WithFrom(memberID string) *AudioPlayBuilder {
	b.from = memberID

	return b
}

// WithStreamURL appends stream URLs.
func (b *AudioPlayBuilder) WithStreamURL(urls ...string) *AudioPlayBuilder {
	b.body.StreamURL = append(b.body.StreamURL, urls...)

	return b
}

// WithLevel sets the volume, from -1 to 1.
func (b *AudioPlayBuilder) WithLevel(level float64) *AudioPlayBuilder {
	b.body.Level = &level

	return b
}

// WithLoop sets how many times to play; 0 loops forever.
func (b *AudioPlayBuilder) WithLoop(loop int) *AudioPlayBuilder {
	b.body.Loop = &loop

	return b
}

// Build validates the builder and returns the event.
func (b *AudioPlayBuilder) Build() (*AudioPlayEvent, error) {
	body := b.body
	body.StreamURL = append([]string(nil), b.body.StreamURL...)

	err := validation.Struct(body)
	if err != nil {
		return nil, err
	}

	return &AudioPlayEvent{Common: Common{From: b.from}, Body: body}, nil
}

// AudioSayBuilder builds an audio:say event.
type AudioSayBuilder struct {
	from string
	body AudioSayBody
}

// NewAudioSay starts an audio:say event.
func NewAudioSay(text string) *AudioSayBuilder {
	return &AudioSayBuilder{body: AudioSayBody{Text: text}}
}

// WithFrom sets the member the event is sent as.
func (b *AudioSayBuilder) WithFrom(memberID string) *AudioSayBuilder {
	b.from = memberID

	return b
}

// WithLevel sets the volume, from -1 to 1.
func (b *AudioSayBuilder) WithLevel(level float64) *AudioSayBuilder {
	b.body.Level = &level

	return b
}

// WithLoop sets how many times to speak; 0 loops forever.
func (b *AudioSayBuilder) WithLoop(loop int) *AudioSayBuilder {
	b.body.Loop = &loop

	return b
}

// WithQueue queues the text behind any speech in progress.
func (b *AudioSayBuilder) WithQueue(queue bool) *AudioSayBuilder {
	b.body.Queue = &queue

	return b
}

// WithVoice sets the voice name and language.
func (b *AudioSayBuilder) WithVoice(voiceName, language string) *AudioSayBuilder {
	b.body.VoiceName = voiceName
	b.body.Language = language

	return b
}

// WithStyle selects a voice style for the language.
func (b *AudioSayBuilder) WithStyle(style int) *AudioSayBuilder {
	b.body.Style = &style

	return b
}

// WithSSML marks the text as SSML.
func (b *AudioSayBuilder) WithSSML(ssml bool) *AudioSayBuilder {
	b.body.SSML = &ssml

	return b
}

// WithPremium selects the premium voice engine.
func (b *AudioSayBuilder) WithPremium(premium bool) *AudioSayBuilder {
	b.body.Premium = &premium

	return b
}

// Build validates the builder and returns the event.
func (b *AudioSayBuilder) Build() (*AudioSayEvent, error) {
	err := validation.Struct(b.body)
	if err != nil {
		return nil, err
	}

	return &AudioSayEvent{Common: Common{From: b.from}, Body: b.body}, nil
}

// MessageBuilder builds a message event.
type MessageBuilder struct {
	from string
	body MessageBody
}

// NewMessage starts a message event with the given body.
func NewMessage(body MessageBody) *MessageBuilder {
	return &MessageBuilder{body: body}
}

// NewTextMessage starts a text message event.
func NewTextMessage(text string) *MessageBuilder {
	return NewMessage(TextMessage{Text: text})
}

// WithFrom sets the member the event is sent as.
func (b *MessageBuilder) WithFrom(memberID string) *MessageBuilder {
	b.from = memberID

	return b
}

// Build validates the builder and returns the event.
func (b *MessageBuilder) Build() (*MessageEvent, error) {
	if b.body == nil {
		return nil, comms.NewPreconditionError("body", "is required")
	}

	if _, ok := b.body.(UnknownMessage); !ok {
		err := validation.Struct(b.body)
		if err != nil {
			return nil, err
		}
	}

	return &MessageEvent{Common: Common{From: b.from}, Body: b.body}, nil
}

// CustomBuilder builds a custom:<suffix> event.
type CustomBuilder struct {
	from   string
	suffix string
	body   map[string]any
}

// NewCustom starts a custom event. suffix becomes part of its type.
func NewCustom(suffix string) *CustomBuilder {
	return &CustomBuilder{suffix: suffix}
}

// WithFrom sets the member the event is sent as.
func (b *CustomBuilder) WithFrom(memberID string) *CustomBuilder {
	b.from = memberID

	return b
}

// WithField sets one body member.
func (b *CustomBuilder) WithField(name string, value any) *CustomBuilder {
	if b.body == nil {
		b.body = make(map[string]any)
	}

	b.body[name] = value

	return b
}

// Build validates the builder and returns the event.
func (b *CustomBuilder) Build() (*CustomEvent, error) {
	if b.suffix == "" {
		return nil, comms.NewPreconditionError("type", "custom event needs a non-empty suffix")
	}

	return &CustomEvent{Common: Common{From: b.from}, Suffix: b.suffix, Body: copyMap(b.body)}, nil
}

// EphemeralBuilder builds an ephemeral event.
type EphemeralBuilder struct {
	from string
	body map[string]any
}

// NewEphemeral starts an ephemeral event.
func NewEphemeral() *EphemeralBuilder {
	return &EphemeralBuilder{}
}

// WithFrom sets the member the event is sent as.
func (b *EphemeralBuilder) WithFrom(memberID string) *EphemeralBuilder {
	b.from = memberID

	return b
}

// WithField sets one body member.
func (b *EphemeralBuilder) WithField(name string, value any) *EphemeralBuilder {
	if b.body == nil {
		b.body = make(map[string]any)
	}

	b.body[name] = value

	return b
}

// Build validates the builder and returns the event.
func (b *EphemeralBuilder) Build() (*EphemeralEvent, error) {
	if len(b.body) == 0 {
		return nil, comms.NewPreconditionError("body", "is required")
	}

	return &EphemeralEvent{Common: Common{From: b.from}, Body: copyMap(b.body)}, nil
}

func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}

	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
