package ui

import (
	"time"

	"farmaterm/internal/domain"
	"farmaterm/internal/search"
)

// BusEventMsg wraps a domain event forwarded from the event bus into the
// bubbletea message loop via Program.Send
type BusEventMsg struct {
	Event domain.DomainEvent
}

// searchResultMsg carries a completed product lookup
type searchResultMsg struct {
	result search.Result
}

// saleResultMsg carries the backend's answer to a sale submission
type saleResultMsg struct {
	sale *domain.Sale
	err  error
}

// clientsLoadedMsg carries the customer catalog
type clientsLoadedMsg struct {
	clients []domain.Client
	err     error
}

// alertsRefreshedMsg carries a manually requested alert fetch
type alertsRefreshedMsg struct {
	alerts []domain.Alert
	err    error
}

// historyLoadedMsg carries recent sales for the pager
type historyLoadedMsg struct {
	sales []domain.Sale
	err   error
}

// clearStatusMsg expires a status toast; stale ids are ignored
type clearStatusMsg struct {
	id int
}

// spinnerTickMsg forces a redraw while an async operation is in flight
type spinnerTickMsg struct {
	at time.Time
}
