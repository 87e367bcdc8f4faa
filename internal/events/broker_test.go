package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerFanOut(t *testing.T) {
	broker := NewBroker()
	a := broker.Subscribe()
	b := broker.Subscribe()
	defer broker.Unsubscribe(a)
	defer broker.Unsubscribe(b)

	evt := Event{HistoryID: "h1", Mode: "IMAGE", Status: StatusCompleted}
	broker.Publish(evt)

	for name, ch := range map[string]chan Event{"a": a, "b": b} {
		select {
		case got := <-ch:
			assert.Equal(t, evt, got, "subscriber %s", name)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s never received the event", name)
		}
	}
}

func TestBrokerDropsWhenSubscriberIsFull(t *testing.T) {
	broker := NewBroker()
	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	// Channel buffer is 8; the rest must be dropped, not block Publish.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			broker.Publish(Event{HistoryID: "h", Status: StatusStarted})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	assert.Len(t, ch, 8)
}

func TestBrokerUnsubscribeClosesChannel(t *testing.T) {
	broker := NewBroker()
	ch := broker.Subscribe()
	broker.Unsubscribe(ch)

	_, open := <-ch
	require.False(t, open)
}
