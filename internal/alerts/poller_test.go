package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"farmaterm/internal/api"
	"farmaterm/internal/domain"
	"farmaterm/internal/eventbus"
)

func TestPollingPublishesAlerts(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Alert{
			{ID: 1, Type: "low_stock", Message: "Aspirina: quedan 2"},
		})
	}))
	defer server.Close()

	bus := eventbus.New()
	received := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventAlertsUpdated, func(e eventbus.DomainEvent) {
		select {
		case received <- e:
		default:
		}
	})

	poller := NewPollerService(api.New(server.URL), bus, time.Hour)
	require.NoError(t, poller.StartPolling(context.Background()))
	defer poller.StopPolling()

	select {
	case e := <-received:
		event, ok := e.(eventbus.AlertsUpdatedEvent)
		require.True(t, ok)
		require.Len(t, event.Alerts, 1)
		require.Equal(t, "low_stock", event.Alerts[0].Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no alerts event published")
	}
}

func TestDoubleStartRejected(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Alert{})
	}))
	defer server.Close()

	poller := NewPollerService(api.New(server.URL), eventbus.New(), time.Hour)
	require.NoError(t, poller.StartPolling(context.Background()))
	require.Error(t, poller.StartPolling(context.Background()))
	poller.StopPolling()

	// After a stop the poller can be started again
	require.NoError(t, poller.StartPolling(context.Background()))
	poller.StopPolling()
}

func TestFetchFailureKeepsQuiet(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	bus := eventbus.New()
	received := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventAlertsUpdated, func(e eventbus.DomainEvent) {
		received <- e
	})

	poller := NewPollerService(api.New(server.URL), bus, time.Hour)
	poller.RefreshNow(context.Background())

	select {
	case <-received:
		t.Fatal("failed fetch must not publish")
	case <-time.After(200 * time.Millisecond):
	}
}
