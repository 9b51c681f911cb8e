// Package alerts polls the backend for low-stock and expiration alerts on a
// fixed interval and publishes the current set on the event bus.
package alerts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"farmaterm/internal/api"
	"farmaterm/internal/eventbus"
)

// PollerService keeps the alert badge current in the background
type PollerService interface {
	StartPolling(ctx context.Context) error
	StopPolling()
	RefreshNow(ctx context.Context)
}

// pollerService is the concrete implementation
type pollerService struct {
	client   *api.Client
	bus      eventbus.EventBus
	interval time.Duration

	mu         sync.Mutex
	isPolling  bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewPollerService creates an alert poller with the given interval
func NewPollerService(client *api.Client, bus eventbus.EventBus, interval time.Duration) PollerService {
	if interval <= 0 {
		interval = time.Minute
	}
	ps := &pollerService{
		client:   client,
		bus:      bus,
		interval: interval,
	}

	// A committed sale changes stock levels, so refresh off-cycle
	bus.Subscribe(eventbus.EventSaleCommitted, func(e eventbus.DomainEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ps.RefreshNow(ctx)
	})

	return ps
}

// StartPolling fetches alerts immediately and then on every tick until the
// context is cancelled or StopPolling is called
func (ps *pollerService) StartPolling(ctx context.Context) error {
	ps.mu.Lock()
	if ps.isPolling {
		ps.mu.Unlock()
		return fmt.Errorf("polling already in progress")
	}
	ps.isPolling = true

	pollCtx, cancel := context.WithCancel(ctx)
	ps.cancelFunc = cancel
	ps.mu.Unlock()

	ps.bus.Publish(eventbus.PollStartedEvent{Interval: ps.interval})

	ps.wg.Add(1)
	go func() {
		defer ps.wg.Done()
		defer func() {
			ps.mu.Lock()
			ps.isPolling = false
			ps.cancelFunc = nil
			ps.mu.Unlock()
		}()

		ps.RefreshNow(pollCtx)

		ticker := time.NewTicker(ps.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				ps.RefreshNow(pollCtx)
			}
		}
	}()

	return nil
}

// StopPolling stops the background loop and waits for it to exit
func (ps *pollerService) StopPolling() {
	ps.mu.Lock()
	if ps.cancelFunc != nil {
		ps.cancelFunc()
	}
	ps.mu.Unlock()

	ps.wg.Wait()
}

// RefreshNow fetches the alert list once and publishes it. Fetch failures are
// logged and swallowed; the previous badge stays on screen.
func (ps *pollerService) RefreshNow(ctx context.Context) {
	alerts, err := ps.client.ListAlerts(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("Alerts: fetch failed: %v", err)
		}
		return
	}

	ps.bus.Publish(eventbus.AlertsUpdatedEvent{Alerts: alerts})
	ps.bus.Publish(eventbus.PollCompletedEvent{AlertCount: len(alerts)})
}
