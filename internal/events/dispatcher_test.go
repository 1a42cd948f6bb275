package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventSessionRefreshed, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})
	dispatcher.Subscribe(EventSessionInvalidated, func(_ context.Context, e Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	event := Event{
		ID:        "ev-1",
		Type:      EventSessionRefreshed,
		UserID:    "user-1",
		Timestamp: time.Now(),
		Payload:   SessionRefreshedPayload{Rotated: true},
	}
	assert.NoError(t, dispatcher.Publish(context.Background(), event))
	assert.Len(t, received, 1)
	assert.Equal(t, "ev-1", received[0].ID)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		calls++
		return nil
	})

	assert.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventLoginSucceeded}))
	assert.Equal(t, 2, calls)
}
