package events

import (
	"encoding/json"
	"strings"
)

// Channel types.
const (
	ChannelApp       = "app"
	ChannelPhone     = "phone"
	ChannelSIP       = "sip"
	ChannelWebsocket = "websocket"
	ChannelVBC       = "vbc"
	ChannelSMS       = "sms"
	ChannelMMS       = "mms"
	ChannelWhatsApp  = "whatsapp"
	ChannelViber     = "viber"
	ChannelMessenger = "messenger"
)

// Endpoint is one side of a member channel, selected by its type.
type Endpoint interface {
	EndpointType() string
}

// MemberChannel describes how a member is connected. From and To omit their
// own type when it matches Type; decoding resolves them against Type.
type MemberChannel struct {
	Type  string
	From  Endpoint
	To    Endpoint
	LegID string
}

// AppEndpoint is an in-app user.
type AppEndpoint struct {
	User string `json:"user,omitempty"`
}

// PhoneEndpoint is a PSTN number.
type PhoneEndpoint struct {
	Number string `json:"number,omitempty"`
}

// SIPEndpoint is a SIP URI.
type SIPEndpoint struct {
	URI      string `json:"uri,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// WebsocketEndpoint is a websocket connection.
type WebsocketEndpoint struct {
	URI         string            `json:"uri,omitempty"`
	ContentType string            `json:"content-type,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// VBCEndpoint is a business communications extension.
type VBCEndpoint struct {
	Extension string `json:"extension,omitempty"`
}

// NumberEndpoint is a messaging channel addressed by number: sms, mms or whatsapp.
type NumberEndpoint struct {
	Kind   string `json:"-"`
	Number string `json:"number,omitempty"`
}

// IDEndpoint is a messaging channel addressed by id: viber or messenger.
type IDEndpoint struct {
	Kind string `json:"-"`
	ID   string `json:"id,omitempty"`
}

// UnknownEndpoint is an endpoint whose type is not registered.
type UnknownEndpoint struct {
	Kind   string
	Fields Fields
}

func (AppEndpoint) EndpointType() string       { return ChannelApp }
func (PhoneEndpoint) EndpointType() string     { return ChannelPhone }
func (SIPEndpoint) EndpointType() string       { return ChannelSIP }
func (WebsocketEndpoint) EndpointType() string { return ChannelWebsocket }
func (VBCEndpoint) EndpointType() string       { return ChannelVBC }
func (e NumberEndpoint) EndpointType() string  { return e.Kind }
func (e IDEndpoint) EndpointType() string      { return e.Kind }
func (e UnknownEndpoint) EndpointType() string { return e.Kind }

// MarshalJSON implements json.Marshaler.
func (e AppEndpoint) MarshalJSON() ([]byte, error) {
	type plain AppEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{ChannelApp, plain(e)})
}

// MarshalJSON implements json.Marshaler.
func (e PhoneEndpoint) MarshalJSON() ([]byte, error) {
	type plain PhoneEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{ChannelPhone, plain(e)})
}

// MarshalJSON implements json.Marshaler.
func (e SIPEndpoint) MarshalJSON() ([]byte, error) {
	type plain SIPEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{ChannelSIP, plain(e)})
}

// MarshalJSON implements json.Marshaler.
func (e WebsocketEndpoint) MarshalJSON() ([]byte, error) {
	type plain WebsocketEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{ChannelWebsocket, plain(e)})
}

// MarshalJSON implements json.Marshaler.
func (e VBCEndpoint) MarshalJSON() ([]byte, error) {
	type plain VBCEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{ChannelVBC, plain(e)})
}

// MarshalJSON implements json.Marshaler.
func (e NumberEndpoint) MarshalJSON() ([]byte, error) {
	type plain NumberEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{e.Kind, plain(e)})
}

// MarshalJSON implements json.Marshaler.
func (e IDEndpoint) MarshalJSON() ([]byte, error) {
	type plain IDEndpoint

	return json.Marshal(struct {
		Type string `json:"type"`
		plain
	}{e.Kind, plain(e)})
}

// MarshalJSON writes type followed by the preserved members.
func (e UnknownEndpoint) MarshalJSON() ([]byte, error) {
	return marshalWithDiscriminator("type", e.Kind, e.Fields)
}

//nolint:gochecknoglobals // Immutable after package init
var endpointRegistry = NewRegistry[Endpoint]("type", strings.ToLower).
	Register(ChannelApp, decodeEndpoint[AppEndpoint]).
	Register(ChannelPhone, decodeEndpoint[PhoneEndpoint]).
	Register(ChannelSIP, decodeEndpoint[SIPEndpoint]).
	Register(ChannelWebsocket, decodeEndpoint[WebsocketEndpoint]).
	Register(ChannelVBC, decodeEndpoint[VBCEndpoint]).
	Register(ChannelSMS, decodeNumberEndpoint).
	Register(ChannelMMS, decodeNumberEndpoint).
	Register(ChannelWhatsApp, decodeNumberEndpoint).
	Register(ChannelViber, decodeIDEndpoint).
	Register(ChannelMessenger, decodeIDEndpoint).
	Fallback(func(kind string, fields Fields, _ DecodeContext) (Endpoint, error) {
		delete(fields, "type")

		return UnknownEndpoint{Kind: kind, Fields: fields}, nil
	})

// DecodeEndpoint decodes a channel endpoint. inherited is used as its type
// when the object does not carry one.
func DecodeEndpoint(data []byte, inherited string) (Endpoint, error) {
	return endpointRegistry.Decode(data, DecodeContext{Inherited: inherited})
}

func decodeEndpoint[E Endpoint](_ string, fields Fields, _ DecodeContext) (Endpoint, error) {
	endpoint, err := decodeAs[E](fields)
	if err != nil {
		return nil, err
	}

	return endpoint, nil
}

func decodeNumberEndpoint(kind string, fields Fields, _ DecodeContext) (Endpoint, error) {
	endpoint, err := decodeAs[NumberEndpoint](fields)
	if err != nil {
		return nil, err
	}

	endpoint.Kind = strings.ToLower(kind)

	return endpoint, nil
}

func decodeIDEndpoint(kind string, fields Fields, _ DecodeContext) (Endpoint, error) {
	endpoint, err := decodeAs[IDEndpoint](fields)
	if err != nil {
		return nil, err
	}

	endpoint.Kind = strings.ToLower(kind)

	return endpoint, nil
}

type channelWire struct {
	Type  string          `json:"type,omitempty"`
	From  json.RawMessage `json:"from,omitempty"`
	To    json.RawMessage `json:"to,omitempty"`
	LegID string          `json:"leg_id,omitempty"`
}

// UnmarshalJSON resolves From and To with Type as their inherited type.
func (c *MemberChannel) UnmarshalJSON(data []byte) error {
	var wire channelWire

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return err
	}

	decoded := MemberChannel{Type: wire.Type, LegID: wire.LegID}

	if !isNull(wire.From) {
		decoded.From, err = DecodeEndpoint(wire.From, wire.Type)
		if err != nil {
			return scopeField("from", err)
		}
	}

	if !isNull(wire.To) {
		decoded.To, err = DecodeEndpoint(wire.To, wire.Type)
		if err != nil {
			return scopeField("to", err)
		}
	}

	*c = decoded

	return nil
}

// MarshalJSON implements json.Marshaler. Endpoints always carry their type.
func (c MemberChannel) MarshalJSON() ([]byte, error) {
	wire := channelWire{Type: c.Type, LegID: c.LegID}

	var err error

	if c.From != nil {
		wire.From, err = json.Marshal(c.From)
		if err != nil {
			return nil, err
		}
	}

	if c.To != nil {
		wire.To, err = json.Marshal(c.To)
		if err != nil {
			return nil, err
		}
	}

	return json.Marshal(wire)
}
