package api

import (
	"time"
)

// Call endpoint types.
const (
	EndpointPhone     = "phone"
	EndpointSIP       = "sip"
	EndpointWebsocket = "websocket"
	EndpointApp       = "app"
	EndpointVBC       = "vbc"
)

// CallEndpoint is the destination or origin of a call. Which fields apply
// depends on Type; use the constructors to build one.
type CallEndpoint struct {
	Type        string            `json:"type"                   yaml:"type"                   validate:"required,oneof=phone sip websocket app vbc"`
	Number      string            `json:"number,omitempty"       yaml:"number,omitempty"`
	DTMFAnswer  string            `json:"dtmfAnswer,omitempty"   yaml:"dtmf_answer,omitempty"`
	URI         string            `json:"uri,omitempty"          yaml:"uri,omitempty"`
	User        string            `json:"user,omitempty"         yaml:"user,omitempty"`
	Extension   string            `json:"extension,omitempty"    yaml:"extension,omitempty"`
	ContentType string            `json:"content-type,omitempty" yaml:"content_type,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"      yaml:"headers,omitempty"`
}

// PhoneTo addresses a PSTN number.
func PhoneTo(number string) CallEndpoint {
	return CallEndpoint{Type: EndpointPhone, Number: number}
}

// SIPTo addresses a SIP URI.
func SIPTo(uri string) CallEndpoint {
	return CallEndpoint{Type: EndpointSIP, URI: uri}
}

// WebsocketTo addresses a websocket server; contentType selects the audio format.
func WebsocketTo(uri, contentType string) CallEndpoint {
	return CallEndpoint{Type: EndpointWebsocket, URI: uri, ContentType: contentType}
}

// AppTo addresses an in-app user.
func AppTo(user string) CallEndpoint {
	return CallEndpoint{Type: EndpointApp, User: user}
}

// VBCTo addresses a business communications extension.
func VBCTo(extension string) CallEndpoint {
	return CallEndpoint{Type: EndpointVBC, Extension: extension}
}

// Address returns the type-specific address of the endpoint.
func (e CallEndpoint) Address() string {
	switch e.Type {
	case EndpointPhone:
		return e.Number
	case EndpointSIP, EndpointWebsocket:
		return e.URI
	case EndpointApp:
		return e.User
	case EndpointVBC:
		return e.Extension
	default:
		return ""
	}
}

// Action is one NCCO instruction.
type Action map[string]any

// TalkAction speaks text into the call.
func TalkAction(text string) Action {
	return Action{"action": "talk", "text": text}
}

// StreamAction plays audio from url into the call.
func StreamAction(url string) Action {
	return Action{"action": "stream", "streamUrl": []string{url}}
}

// ConversationAction places the call into the named conversation.
func ConversationAction(name string) Action {
	return Action{"action": "conversation", "name": name}
}

// CreateCallRequest represents a request to place an outbound call. Build it
// with NewCreateCall.
type CreateCallRequest struct {
	To               []CallEndpoint `json:"to"                           yaml:"to"                           validate:"required,min=1,dive"`
	From             *CallEndpoint  `json:"from,omitempty"               yaml:"from,omitempty"`
	RandomFromNumber *bool          `json:"random_from_number,omitempty" yaml:"random_from_number,omitempty"`
	AnswerURL        []string       `json:"answer_url,omitempty"         yaml:"answer_url,omitempty"         validate:"omitempty,dive,url"`
	AnswerMethod     string         `json:"answer_method,omitempty"      yaml:"answer_method,omitempty"      validate:"omitempty,oneof=GET POST"`
	NCCO             []Action       `json:"ncco,omitempty"               yaml:"ncco,omitempty"`
	EventURL         []string       `json:"event_url,omitempty"          yaml:"event_url,omitempty"          validate:"omitempty,dive,url"`
	EventMethod      string         `json:"event_method,omitempty"       yaml:"event_method,omitempty"       validate:"omitempty,oneof=GET POST"`
	MachineDetection string         `json:"machine_detection,omitempty"  yaml:"machine_detection,omitempty"  validate:"omitempty,oneof=continue hangup"`
	LengthTimer      *int           `json:"length_timer,omitempty"       yaml:"length_timer,omitempty"       validate:"omitempty,gte=1,lte=7200"`
	RingingTimer     *int           `json:"ringing_timer,omitempty"      yaml:"ringing_timer,omitempty"      validate:"omitempty,gte=1,lte=120"`
}

// CallResponse is returned when a call is created.
type CallResponse struct {
	UUID             string `json:"uuid"              yaml:"uuid"`
	Status           string `json:"status"            yaml:"status"`
	Direction        string `json:"direction"         yaml:"direction"`
	ConversationUUID string `json:"conversation_uuid" yaml:"conversation_uuid"`
}

// Call represents a call.
type Call struct {
	UUID             string       `json:"uuid"                 yaml:"uuid"`
	ConversationUUID string       `json:"conversation_uuid"    yaml:"conversation_uuid"`
	To               CallEndpoint `json:"to"                   yaml:"to"`
	From             CallEndpoint `json:"from"                 yaml:"from"`
	Status           string       `json:"status"               yaml:"status"`
	Direction        string       `json:"direction"            yaml:"direction"`
	Rate             string       `json:"rate,omitempty"       yaml:"rate,omitempty"`
	Price            string       `json:"price,omitempty"      yaml:"price,omitempty"`
	Duration         string       `json:"duration,omitempty"   yaml:"duration,omitempty"`
	StartTime        *time.Time   `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime          *time.Time   `json:"end_time,omitempty"   yaml:"end_time,omitempty"`
	Network          string       `json:"network,omitempty"    yaml:"network,omitempty"`
	Links            Links        `json:"_links,omitempty"     yaml:"links,omitempty"`
}

// ListCallsRequest filters a call listing. Unset fields are not sent.
type ListCallsRequest struct {
	Status           string     `json:"status,omitempty"            yaml:"status,omitempty"`
	DateStart        *time.Time `json:"date_start,omitempty"        yaml:"date_start,omitempty"`
	DateEnd          *time.Time `json:"date_end,omitempty"          yaml:"date_end,omitempty"`
	PageSize         *int       `json:"page_size,omitempty"         yaml:"page_size,omitempty"         validate:"omitempty,gte=1,lte=100"`
	RecordIndex      *int       `json:"record_index,omitempty"      yaml:"record_index,omitempty"      validate:"omitempty,gte=0"`
	Order            Order      `json:"order,omitempty"             yaml:"order,omitempty"             validate:"omitempty,oneof=asc desc"`
	ConversationUUID string     `json:"conversation_uuid,omitempty" yaml:"conversation_uuid,omitempty"`
}

// CallsPage is one page of a call listing.
type CallsPage struct {
	Count       int           `json:"count"        yaml:"count"`
	PageSize    int           `json:"page_size"    yaml:"page_size"`
	RecordIndex int           `json:"record_index" yaml:"record_index"`
	Links       Links         `json:"_links"       yaml:"links"`
	Embedded    CallsEmbedded `json:"_embedded"    yaml:"embedded"`
}

// CallsEmbedded holds the calls of a page.
type CallsEmbedded struct {
	Calls []Call `json:"calls" yaml:"calls"`
}

// CallAction is an in-progress call modification.
type CallAction string

// Call actions.
const (
	CallActionHangup    CallAction = "hangup"
	CallActionMute      CallAction = "mute"
	CallActionUnmute    CallAction = "unmute"
	CallActionEarmuff   CallAction = "earmuff"
	CallActionUnearmuff CallAction = "unearmuff"
	CallActionTransfer  CallAction = "transfer"
)

// TransferDestination is where a transferred call continues.
type TransferDestination struct {
	Type string   `json:"type"          yaml:"type"`
	URL  []string `json:"url,omitempty"  yaml:"url,omitempty"  validate:"omitempty,dive,url"`
	NCCO []Action `json:"ncco,omitempty" yaml:"ncco,omitempty"`
}

// UpdateCallRequest modifies an in-progress call. Build it with NewUpdateCall.
type UpdateCallRequest struct {
	UUID        string               `json:"-"                     yaml:"uuid"`
	Action      CallAction           `json:"action"                yaml:"action"                validate:"required,oneof=hangup mute unmute earmuff unearmuff transfer"`
	Destination *TransferDestination `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// StreamRequest plays audio into a call. Build it with NewStream.
type StreamRequest struct {
	UUID      string   `json:"-"               yaml:"uuid"`
	StreamURL []string `json:"stream_url"      yaml:"stream_url"      validate:"required,min=1,dive,url"`
	Loop      *int     `json:"loop,omitempty"  yaml:"loop,omitempty"  validate:"omitempty,gte=0"`
	Level     *float64 `json:"level,omitempty" yaml:"level,omitempty" validate:"omitempty,gte=-1,lte=1"`
}

// StreamResponse acknowledges a stream start or stop.
type StreamResponse struct {
	Message string `json:"message" yaml:"message"`
	UUID    string `json:"uuid"    yaml:"uuid"`
}
