package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"farmaterm/internal/domain"
)

func TestPublishReachesSubscriber(t *testing.T) {
	t.Parallel()
	bus := New()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventAlertsUpdated, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(AlertsUpdatedEvent{Alerts: []domain.Alert{{ID: 1, Message: "Stock bajo"}}})

	select {
	case e := <-received:
		event, ok := e.(AlertsUpdatedEvent)
		require.True(t, ok)
		require.Len(t, event.Alerts, 1)
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestSubscribersAreTypeScoped(t *testing.T) {
	t.Parallel()
	bus := New()

	saleEvents := make(chan DomainEvent, 1)
	bus.Subscribe(EventSaleCommitted, func(e DomainEvent) {
		saleEvents <- e
	})

	bus.Publish(AlertsUpdatedEvent{})

	select {
	case <-saleEvents:
		t.Fatal("handler received an event of a different type")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandlerPanicDoesNotKillDispatcher(t *testing.T) {
	t.Parallel()
	bus := New()

	bus.Subscribe(EventError, func(e DomainEvent) {
		panic("handler bug")
	})
	received := make(chan struct{}, 1)
	bus.Subscribe(EventError, func(e DomainEvent) {
		received <- struct{}{}
	})

	bus.Publish(ErrorEvent{Message: "boom"})
	bus.Publish(ErrorEvent{Message: "boom again"})

	deadline := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-deadline:
			t.Fatal("dispatcher stopped after a handler panic")
		}
	}
}
