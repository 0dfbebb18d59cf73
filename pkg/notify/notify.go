package notify

import (
	"context"
	"time"
)

// EventType names the kind of notification.
type EventType string

const (
	// EventMovementRecorded is sent after a deposit or withdrawal is appended.
	EventMovementRecorded EventType = "movementRecorded"
)

// Event describes one recorded movement and the balance it left behind.
type Event struct {
	Type       EventType `json:"type"`
	AccountID  string    `json:"account_id"`
	MovementID string    `json:"movement_id"`
	Kind       string    `json:"kind"`
	Amount     string    `json:"amount"`
	Balance    string    `json:"balance"`
	Timestamp  time.Time `json:"timestamp"`
}

//go:generate mockery --name Notifier --output ./mocks

// Notifier defines the interface for a component that publishes movement events.
type Notifier interface {
	// Notify publishes one event.
	Notify(ctx context.Context, event Event) error
}

// NoOp is a notifier that does nothing.
type NoOp struct{}

// Notify does nothing.
func (NoOp) Notify(ctx context.Context, event Event) error {
	return nil
}
