package order

import (
	"context"
	"time"
)

// EventType names an order lifecycle event.
type EventType string

const (
	EventPlaced        EventType = "order.placed"
	EventPaid          EventType = "order.paid"
	EventStatusChanged EventType = "order.status_changed"
)

// Event is emitted after a change is committed.
type Event struct {
	Type           EventType
	Order          *Order
	PreviousStatus Status
	At             time.Time
}

// Publisher delivers events to downstream consumers. Delivery is best
// effort: a publish failure never undoes the committed change.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
