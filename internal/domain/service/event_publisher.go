package service

import (
	"context"
)

// Account lifecycle event types.
const (
	EventAccountRegistered = "account.registered"
	EventAccountVerified   = "account.verified"
)

// AccountEvent is a best-effort notification that an account changed
// state. Consumers are external; the core never depends on delivery.
type AccountEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event for async processing
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
