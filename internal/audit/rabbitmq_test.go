package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestPublish(t *testing.T) {
	ch := new(MockChannel)
	p := NewRabbitPublisher(ch, "rentify.audit")

	var sent amqp.Publishing
	ch.On("Publish", "rentify.audit", "car.deleted", false, false, mock.AnythingOfType("amqp.Publishing")).
		Run(func(args mock.Arguments) { sent = args.Get(4).(amqp.Publishing) }).
		Return(nil).Once()

	err := p.Publish(context.Background(), Event{Action: CarDeleted, Actor: "root@mail.com", TargetID: "12"})
	require.NoError(t, err)
	ch.AssertExpectations(t)

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)

	var got Event
	require.NoError(t, json.Unmarshal(sent.Body, &got))
	assert.Equal(t, CarDeleted, got.Action)
	assert.Equal(t, "12", got.TargetID)
	assert.WithinDuration(t, time.Now(), got.At, time.Minute)
}

func TestPublish_ChannelError(t *testing.T) {
	ch := new(MockChannel)
	p := NewRabbitPublisher(ch, "rentify.audit")
	ch.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := p.Publish(context.Background(), Event{Action: UserDeleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit.Publish")
}

func TestPublish_MarshalError(t *testing.T) {
	p := NewRabbitPublisher(new(MockChannel), "rentify.audit")

	err := p.Publish(context.Background(), Event{Action: CarSaved, Details: make(chan int)})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{Action: CarSaved}))
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestDialWithRetry(t *testing.T) {
	tests := []struct {
		name      string
		retries   int
		wantDials int
	}{
		{name: "three attempts", retries: 3, wantDials: 3},
		{name: "zero retries still dials once", retries: 0, wantDials: 1},
		{name: "negative retries still dials once", retries: -2, wantDials: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dials, sleeps int
			dial := func(string) (*amqp.Connection, error) {
				dials++
				return nil, errors.New("connection refused")
			}

			conn, err := dialWithRetry("amqp://broker", tt.retries, time.Second, dial, func(time.Duration) { sleeps++ })
			require.Error(t, err)
			assert.Nil(t, conn)
			assert.Contains(t, err.Error(), "connection refused")
			assert.Equal(t, tt.wantDials, dials)
			assert.Equal(t, tt.wantDials-1, sleeps)
		})
	}
}

func TestClose_ClosesConnectionOnChannelError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("Close").Return(errors.New("channel already closed")).Once()

	var connClosed bool
	p := &RabbitPublisher{ch: ch, conn: closerFunc(func() error {
		connClosed = true
		return nil
	})}

	err := p.Close()
	require.Error(t, err)
	assert.True(t, connClosed)
	ch.AssertExpectations(t)
}
