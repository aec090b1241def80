package events

import (
	"encoding/json"
	"strings"
)

// Message types.
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeAudio    = "audio"
	MessageTypeVideo    = "video"
	MessageTypeFile     = "file"
	MessageTypeVCard    = "vcard"
	MessageTypeLocation = "location"
	MessageTypeTemplate = "template"
	MessageTypeCustom   = "custom"
)

// MessageBody is the body of a message event, selected by message_type.
type MessageBody interface {
	MessageType() string
}

// Attachment is the payload of the media message types.
type Attachment struct {
	URL  string `json:"url"  validate:"required,url"`
	Name string `json:"name,omitempty"`
}

// Location is a shared geographic position.
type Location struct {
	Latitude  string `json:"latitude"  validate:"required"`
	Longitude string `json:"longitude" validate:"required"`
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Template names a pre-approved template and its parameters.
type Template struct {
	Name       string   `json:"name" validate:"required"`
	Parameters []string `json:"parameters,omitempty"`
}

// TextMessage is a plain text message.
type TextMessage struct {
	Text string `json:"text" validate:"required"`
}

// ImageMessage carries an image.
type ImageMessage struct {
	Image Attachment `json:"image"`
}

// AudioMessage carries an audio clip.
type AudioMessage struct {
	Audio Attachment `json:"audio"`
}

// VideoMessage carries a video.
type VideoMessage struct {
	Video Attachment `json:"video"`
}

// FileMessage carries a file.
type FileMessage struct {
	File Attachment `json:"file"`
}

// VCardMessage carries a contact card.
type VCardMessage struct {
	VCard Attachment `json:"vcard"`
}

// LocationMessage carries a location.
type LocationMessage struct {
	Location Location `json:"location"`
}

// TemplateMessage references a template.
type TemplateMessage struct {
	Template Template `json:"template"`
}

// CustomMessage carries channel-specific content verbatim.
type CustomMessage struct {
	Custom map[string]any `json:"custom"`
}

// UnknownMessage is a message whose message_type is not registered.
type UnknownMessage struct {
	Kind   string
	Fields Fields
}

func (m TextMessage) MessageType() string     { return MessageTypeText }
func (m ImageMessage) MessageType() string    { return MessageTypeImage }
func (m AudioMessage) MessageType() string    { return MessageTypeAudio }
func (m VideoMessage) MessageType() string    { return MessageTypeVideo }
func (m FileMessage) MessageType() string     { return MessageTypeFile }
func (m VCardMessage) MessageType() string    { return MessageTypeVCard }
func (m LocationMessage) MessageType() string { return MessageTypeLocation }
func (m TemplateMessage) MessageType() string { return MessageTypeTemplate }
func (m CustomMessage) MessageType() string   { return MessageTypeCustom }
func (m UnknownMessage) MessageType() string  { return m.Kind }

// MarshalJSON implements json.Marshaler.
func (m TextMessage) MarshalJSON() ([]byte, error) {
	type plain TextMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeText, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m ImageMessage) MarshalJSON() ([]byte, error) {
	type plain ImageMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeImage, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m AudioMessage) MarshalJSON() ([]byte, error) {
	type plain AudioMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeAudio, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m VideoMessage) MarshalJSON() ([]byte, error) {
	type plain VideoMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeVideo, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m FileMessage) MarshalJSON() ([]byte, error) {
	type plain FileMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeFile, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m VCardMessage) MarshalJSON() ([]byte, error) {
	type plain VCardMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeVCard, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m LocationMessage) MarshalJSON() ([]byte, error) {
	type plain LocationMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeLocation, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m TemplateMessage) MarshalJSON() ([]byte, error) {
	type plain TemplateMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeTemplate, plain(m)})
}

// MarshalJSON implements json.Marshaler.
func (m CustomMessage) MarshalJSON() ([]byte, error) {
	type plain CustomMessage

	return json.Marshal(struct {
		MessageType string `json:"message_type"`
		plain
	}{MessageTypeCustom, plain(m)})
}

// MarshalJSON writes message_type followed by the preserved members.
func (m UnknownMessage) MarshalJSON() ([]byte, error) {
	return marshalWithDiscriminator("message_type", m.Kind, m.Fields)
}

//nolint:gochecknoglobals // Immutable after package init
var messageRegistry = NewRegistry[MessageBody]("message_type", strings.ToLower).
	Register(MessageTypeText, decodeMessage[TextMessage]).
	Register(MessageTypeImage, decodeMessage[ImageMessage]).
	Register(MessageTypeAudio, decodeMessage[AudioMessage]).
	Register(MessageTypeVideo, decodeMessage[VideoMessage]).
	Register(MessageTypeFile, decodeMessage[FileMessage]).
	Register(MessageTypeVCard, decodeMessage[VCardMessage]).
	Register(MessageTypeLocation, decodeMessage[LocationMessage]).
	Register(MessageTypeTemplate, decodeMessage[TemplateMessage]).
	Register(MessageTypeCustom, decodeMessage[CustomMessage]).
	Fallback(func(kind string, fields Fields, _ DecodeContext) (MessageBody, error) {
		delete(fields, "message_type")

		return UnknownMessage{Kind: kind, Fields: fields}, nil
	})

// DecodeMessage decodes a message body by its message_type.
func DecodeMessage(data []byte) (MessageBody, error) {
	return messageRegistry.Decode(data, DecodeContext{})
}

func decodeMessage[M MessageBody](_ string, fields Fields, _ DecodeContext) (MessageBody, error) {
	body, err := decodeAs[M](fields)
	if err != nil {
		return nil, err
	}

	return body, nil
}
