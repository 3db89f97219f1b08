package order

import (
	"time"

	"gasfill/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventCreated            EventType = "order.created"
	EventAssigned           EventType = "order.assigned"
	EventAssignmentAccepted EventType = "order.assignment_accepted"
	EventAssignmentRejected EventType = "order.assignment_rejected"
	EventAssignmentExpired  EventType = "order.assignment_expired"
	EventStatusChanged      EventType = "order.status_changed"
	EventCancelled          EventType = "order.cancelled"
	EventRated              EventType = "order.rated"
)

// Event records a state change of an order. Events accumulate on the aggregate
// and are published by the unit of work after commit.
type Event struct {
	Type       EventType
	OrderID    ID
	RiderID    *kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}
