package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAlertsUpdated EventType = "AlertsUpdated"
	EventSaleCommitted EventType = "SaleCommitted"
	EventPollStarted   EventType = "PollStarted"
	EventPollCompleted EventType = "PollCompleted"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
	EventConfigChanged EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AlertsUpdatedEvent is emitted when the alerts poller fetches a fresh set
type AlertsUpdatedEvent struct {
	Alerts []Alert
}

func (e AlertsUpdatedEvent) Type() EventType { return EventAlertsUpdated }

// SaleCommittedEvent is emitted after the backend accepts a sale
type SaleCommittedEvent struct {
	Sale *Sale
}

func (e SaleCommittedEvent) Type() EventType { return EventSaleCommitted }

// PollStartedEvent is emitted when the alerts poll loop starts
type PollStartedEvent struct {
	Interval time.Duration
}

func (e PollStartedEvent) Type() EventType { return EventPollStarted }

// PollCompletedEvent is emitted when an alerts poll cycle finishes
type PollCompletedEvent struct {
	AlertCount int
}

func (e PollCompletedEvent) Type() EventType { return EventPollCompleted }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted after the configuration is read
type ConfigLoadedEvent struct {
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted after the configuration is written
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when a setting changes at runtime and should
// be persisted
type ConfigChangedEvent struct {
	Token   string
	BaseURL string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
