package api

import (
	"github.com/fivetwenty-io/comms-client/internal/validation"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
)

// SMS encodings.
const (
	SMSTypeText    = "text"
	SMSTypeUnicode = "unicode"
	SMSTypeBinary  = "binary"
)

// SMSStatusOK is the per-message status of an accepted message.
const SMSStatusOK = "0"

// SendSMSRequest represents an outbound SMS. Build it with NewSMS or
// NewBinarySMS.
type SendSMSRequest struct {
	From            string `json:"from"                        yaml:"from"                        validate:"required"`
	To              string `json:"to"                          yaml:"to"                          validate:"required"`
	Text            string `json:"text,omitempty"              yaml:"text,omitempty"              validate:"required_unless=Type binary"`
	Type            string `json:"type,omitempty"              yaml:"type,omitempty"              validate:"omitempty,oneof=text unicode binary"`
	Body            string `json:"body,omitempty"              yaml:"body,omitempty"              validate:"required_if=Type binary,omitempty,hexadecimal"`
	UDH             string `json:"udh,omitempty"               yaml:"udh,omitempty"               validate:"required_if=Type binary,omitempty,hexadecimal"`
	ClientRef       string `json:"client-ref,omitempty"        yaml:"client_ref,omitempty"`
	StatusReportReq *bool  `json:"status-report-req,omitempty" yaml:"status_report_req,omitempty"`
	Callback        string `json:"callback,omitempty"          yaml:"callback,omitempty"          validate:"omitempty,url"`
	TTL             *int   `json:"ttl,omitempty"               yaml:"ttl,omitempty"               validate:"omitempty,gte=20000,lte=604800000"`
	MessageClass    *int   `json:"message-class,omitempty"     yaml:"message_class,omitempty"     validate:"omitempty,gte=0,lte=3"`
}

// SMSResponse reports the parts a message was split into.
type SMSResponse struct {
	MessageCount string       `json:"message-count" yaml:"message_count"`
	Messages     []SMSMessage `json:"messages"      yaml:"messages"`
}

// SMSMessage is the outcome of one message part.
type SMSMessage struct {
	To               string `json:"to"                          yaml:"to"`
	MessageID        string `json:"message-id,omitempty"        yaml:"message_id,omitempty"`
	Status           string `json:"status"                      yaml:"status"`
	RemainingBalance string `json:"remaining-balance,omitempty" yaml:"remaining_balance,omitempty"`
	MessagePrice     string `json:"message-price,omitempty"     yaml:"message_price,omitempty"`
	Network          string `json:"network,omitempty"           yaml:"network,omitempty"`
	ClientRef        string `json:"client-ref,omitempty"        yaml:"client_ref,omitempty"`
	ErrorText        string `json:"error-text,omitempty"        yaml:"error_text,omitempty"`
}

// Failed returns the parts the platform rejected. The endpoint answers 200
// even when parts fail; their status is non-zero.
func (r *SMSResponse) Failed() []SMSMessage {
	var failed []SMSMessage

	for _, message := range r.Messages {
		if message.Status != SMSStatusOK {
			failed = append(failed, message)
		}
	}

	return failed
}

// SMSBuilder builds a SendSMSRequest.
type SMSBuilder struct {
	req SendSMSRequest
}

// NewSMS starts a text message.
func NewSMS(from, to, text string) *SMSBuilder {
	return &SMSBuilder{req: SendSMSRequest{From: from, To: to, Text: text}}
}

// NewBinarySMS starts a binary message with hex encoded body and user data header.
func NewBinarySMS(from, to, body, udh string) *SMSBuilder {
	return &SMSBuilder{req: SendSMSRequest{From: from, To: to, Type: SMSTypeBinary, Body: body, UDH: udh}}
}

// WithUnicode sends the text as unicode.
func (b *SMSBuilder) WithUnicode() *SMSBuilder {
	b.req.Type = SMSTypeUnicode

	return b
}

// WithClientRef tags the message with a reference echoed in receipts.
func (b *SMSBuilder) WithClientRef(ref string) *SMSBuilder {
	b.req.ClientRef = ref

	return b
}

// WithStatusReport requests a delivery receipt.
func (b *SMSBuilder) WithStatusReport(enabled bool) *SMSBuilder {
	b.req.StatusReportReq = &enabled

	return b
}

// WithCallback sets the delivery receipt webhook.
func (b *SMSBuilder) WithCallback(url string) *SMSBuilder {
	b.req.Callback = url

	return b
}

// WithTTL sets the delivery window, in milliseconds.
func (b *SMSBuilder) WithTTL(milliseconds int) *SMSBuilder {
	b.req.TTL = &milliseconds

	return b
}

// WithMessageClass sets the class, 0 for flash messages.
func (b *SMSBuilder) WithMessageClass(class int) *SMSBuilder {
	b.req.MessageClass = &class

	return b
}

// Build validates the builder and returns the request.
func (b *SMSBuilder) Build() (*SendSMSRequest, error) {
	req := b.req

	var textErr error
	if req.Type == SMSTypeBinary && req.Text != "" {
		textErr = comms.NewPreconditionError("text", "must not be set for binary messages")
	}

	err := validation.Join(textErr, validation.Struct(req))
	if err != nil {
		return nil, err
	}

	return &req, nil
}
