package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventSearchCompleted, func(e DomainEvent) {
		got <- e
	})

	b.Publish(SearchCompletedEvent{Brand: "Vallejo", ColorCode: "70.951", Found: 3})

	select {
	case e := <-got:
		ev, ok := e.(SearchCompletedEvent)
		require.True(t, ok)
		require.Equal(t, 3, ev.Found)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	calls := make(chan struct{}, 4)
	unsubscribe := b.Subscribe(EventColorApplied, func(DomainEvent) {
		calls <- struct{}{}
	})
	unsubscribe()

	done := make(chan struct{}, 1)
	b.Subscribe(EventColorApplied, func(DomainEvent) {
		done <- struct{}{}
	})

	b.Publish(ColorAppliedEvent{})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	require.Len(t, calls, 0)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) {
		panic("boom")
	})
	ok := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) {
		ok <- struct{}{}
	})

	b.Publish(ErrorEvent{Op: "search", Message: "bad brand"})

	select {
	case <-ok:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()

	require.NotPanics(t, func() {
		b.Publish(ErrorEvent{Op: "apply"})
	})
}
