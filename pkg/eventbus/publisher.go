// Package eventbus forwards decoded events to NATS.
//
// Each event is re-encoded through the event codec and published on a
// subject derived from its wire type: "audio:play" becomes
// "<prefix>.audio.play" and "custom:order-paid" becomes
// "<prefix>.custom.order-paid". Unknown events are published with every
// field they arrived with.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/comms-client/internal/constants"
	"github.com/fivetwenty-io/comms-client/pkg/comms"
	"github.com/fivetwenty-io/comms-client/pkg/events"
)

// HeaderEventType carries the wire type of a published event.
const HeaderEventType = "Comms-Event-Type"

// Static errors for err113 compliance.
var (
	ErrConnRequired = errors.New("NATS connection is required")
	ErrNilEvent     = errors.New("nil event")
)

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// Publisher publishes events to NATS subjects.
type Publisher struct {
	conn   Conn
	prefix string
	flush  bool
	logger comms.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSubjectPrefix replaces DefaultSubjectPrefix.
func WithSubjectPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = strings.Trim(prefix, ".")
	}
}

// WithFlush makes Publish wait until the server has processed each message.
func WithFlush(flush bool) Option {
	return func(p *Publisher) {
		p.flush = flush
	}
}

// WithLogger sets the logger for publish traces.
func WithLogger(logger comms.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher on conn.
func NewPublisher(conn Conn, opts ...Option) (*Publisher, error) {
	if conn == nil {
		return nil, ErrConnRequired
	}

	p := &Publisher{
		conn:   conn,
		prefix: constants.DefaultSubjectPrefix,
		logger: comms.NoopLogger{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Connect dials url and returns the connection for NewPublisher.
func Connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	opts = append([]nats.Option{nats.Name("comms-client")}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return conn, nil
}

// Subject returns the subject an event is published on.
func (p *Publisher) Subject(event events.Event) string {
	return Subject(p.prefix, event.Type())
}

// Publish encodes event and publishes it. Its signature matches
// webhook.HandlerFunc so a publisher can receive webhooks directly.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	if event == nil {
		return ErrNilEvent
	}

	data, err := events.Encode(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	msg := nats.NewMsg(p.Subject(event))
	msg.Data = data
	msg.Header.Set(HeaderEventType, event.Type())

	err = p.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", msg.Subject, err)
	}

	if p.flush {
		err = p.conn.FlushWithContext(ctx)
		if err != nil {
			return fmt.Errorf("flushing %s: %w", msg.Subject, err)
		}
	}

	p.logger.Debug("Published event", map[string]interface{}{
		"subject": msg.Subject,
		"bytes":   len(data),
	})

	return nil
}

// Subject maps a wire type to a subject under prefix. Each ':' separated
// segment becomes one token; characters NATS reserves are replaced with '_'.
// Only the namespace token is lower-cased, so custom:Widget and custom:widget
// stay on different subjects.
func Subject(prefix, wireType string) string {
	segments := strings.Split(wireType, ":")
	segments[0] = strings.ToLower(segments[0])

	tokens := make([]string, 0, len(segments)+1)
	if prefix != "" {
		tokens = append(tokens, prefix)
	}

	for _, segment := range segments {
		tokens = append(tokens, subjectToken(segment))
	}

	return strings.Join(tokens, ".")
}

func subjectToken(segment string) string {
	if segment == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		default:
			return r
		}
	}, segment)
}
