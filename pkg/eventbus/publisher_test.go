package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/comms-client/pkg/events"
)

var errPublish = errors.New("connection closed")

type fakeConn struct {
	mu       sync.Mutex
	messages []*nats.Msg
	flushes  int
	err      error
}

func (c *fakeConn) PublishMsg(msg *nats.Msg) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return c.err
	}

	c.messages = append(c.messages, msg)

	return nil
}

func (c *fakeConn) FlushWithContext(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flushes++

	return nil
}

func TestSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix   string
		wireType string
		want     string
	}{
		{prefix: "comms.events", wireType: "audio:play", want: "comms.events.audio.play"},
		{prefix: "comms.events", wireType: "sip:amd_machine", want: "comms.events.sip.amd_machine"},
		{prefix: "comms.events", wireType: "custom:order.paid", want: "comms.events.custom.order_paid"},
		{prefix: "comms.events", wireType: "custom:", want: "comms.events.custom._"},
		{prefix: "", wireType: "Member:Joined", want: "member.Joined"},
		{prefix: "comms.events", wireType: "custom:Widget", want: "comms.events.custom.Widget"},
		{prefix: "comms.events", wireType: "custom:widget", want: "comms.events.custom.widget"},
		{prefix: "x", wireType: "weird type>*", want: "x.weird_type__"},
	}

	for _, tt := range tests {
		t.Run(tt.wireType, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Subject(tt.prefix, tt.wireType))
		})
	}

	assert.NotEqual(t, Subject("comms.events", "custom:Widget"), Subject("comms.events", "custom:widget"))
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}

	publisher, err := NewPublisher(conn, WithSubjectPrefix("tenant.a."), WithFlush(true))
	require.NoError(t, err)

	event, err := events.Decode([]byte(`{"id":3,"type":"brand:new","body":{"x":1},"extra":true}`))
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, conn.messages, 1)

	msg := conn.messages[0]
	assert.Equal(t, "tenant.a.brand.new", msg.Subject)
	assert.Equal(t, "brand:new", msg.Header.Get(HeaderEventType))
	assert.JSONEq(t, `{"id":3,"type":"brand:new","body":{"x":1},"extra":true}`, string(msg.Data))
	assert.Equal(t, 1, conn.flushes)
}

func TestPublisher_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewPublisher(nil)
	require.ErrorIs(t, err, ErrConnRequired)

	conn := &fakeConn{err: errPublish}

	publisher, err := NewPublisher(conn)
	require.NoError(t, err)

	require.ErrorIs(t, publisher.Publish(context.Background(), nil), ErrNilEvent)

	event, err := events.NewTextMessage("hi").Build()
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), event)
	require.ErrorIs(t, err, errPublish)
	assert.Contains(t, err.Error(), "comms.events.message")
	assert.Zero(t, conn.flushes)
}
