package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventFetchRequested, func(e DomainEvent) { got <- e })

	b.Publish(FetchRequestedEvent{Reason: "startup"})

	select {
	case e := <-got:
		ev, ok := e.(FetchRequestedEvent)
		require.True(t, ok)
		assert.Equal(t, "startup", ev.Reason)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventSourceChanged, func(DomainEvent) { calls.Add(1) })
	seen := make(chan struct{}, 1)
	b.Subscribe(EventSourceChanged, func(DomainEvent) { seen <- struct{}{} })

	unsubscribe()
	b.Publish(SourceChangedEvent{Path: "users.json"})

	select {
	case <-seen:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	// handlers of one event run in subscription order
	assert.Equal(t, int32(0), calls.Load())
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	done := make(chan struct{}, 1)
	b.Subscribe(EventFetchFailed, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventFetchFailed, func(DomainEvent) { done <- struct{}{} })

	b.Publish(FetchFailedEvent{Source: "test"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus stopped delivering after a panicking handler")
	}
}

func TestEventsArriveInPublishOrder(t *testing.T) {
	b := New(zerolog.Nop())
	defer b.Close()

	const n = 100
	got := make(chan EventType, 2*n)
	b.Subscribe(EventFetchStarted, func(e DomainEvent) { got <- e.Type() })
	b.Subscribe(EventUsersFetched, func(e DomainEvent) { got <- e.Type() })

	for i := 0; i < n; i++ {
		b.Publish(FetchStartedEvent{Source: "test"})
		b.Publish(UsersFetchedEvent{Source: "test"})
	}

	for i := 0; i < 2*n; i++ {
		want := EventFetchStarted
		if i%2 == 1 {
			want = EventUsersFetched
		}
		select {
		case et := <-got:
			require.Equal(t, want, et, "event %d out of order", i)
		case <-time.After(time.Second):
			t.Fatalf("event %d was not delivered", i)
		}
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := New(zerolog.Nop())
	b.Close()
	assert.NotPanics(t, func() { b.Publish(FetchRequestedEvent{}) })
	assert.NotPanics(t, b.Close)
}
