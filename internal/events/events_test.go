package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	err := bus.PublishJSON(EventBookingCreated, BookingEventPayload{BookingID: 7, Status: "WAITING"})
	require.NoError(t, err)

	assert.Equal(t, 1, callCount)
	require.NotNil(t, received)
	assert.Equal(t, EventBookingCreated, received.Type)
	assert.False(t, received.CreatedAt.IsZero())

	var decoded BookingEventPayload
	require.NoError(t, json.Unmarshal(received.Payload, &decoded))
	assert.Equal(t, int64(7), decoded.BookingID)
	assert.Equal(t, "WAITING", decoded.Status)
}

func TestEventBusWildcard(t *testing.T) {
	bus := NewEventBus()
	var typed, all int

	bus.Subscribe(EventBookingApproved, func(_ *Event) error { typed++; return nil })
	bus.SubscribeAll(func(_ *Event) error { all++; return nil })

	require.NoError(t, bus.Publish(&Event{Type: EventBookingApproved}))
	require.NoError(t, bus.Publish(&Event{Type: EventCommentCreated}))

	assert.Equal(t, 1, typed)
	assert.Equal(t, 2, all)
}

func TestEventBusHandlerErrors(t *testing.T) {
	bus := NewEventBus()
	boom := errors.New("boom")
	var called bool

	bus.Subscribe("event", func(_ *Event) error { return boom })
	bus.Subscribe("event", func(_ *Event) error { called = true; return nil })

	err := bus.Publish(&Event{Type: "event"})
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.Publish(&Event{Type: "unknown"}))
	assert.NoError(t, bus.PublishJSON("unknown", nil))

	var nilBus *EventBus
	assert.NoError(t, nilBus.PublishJSON("unknown", nil))
}

func TestNewJSONEventInvalidPayload(t *testing.T) {
	_, err := NewJSONEvent("type", make(chan int))
	assert.Error(t, err)
}
