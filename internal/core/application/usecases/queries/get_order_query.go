// Package queries contains read operations. Handlers read the tables directly
// with SQL and return flat read models instead of loading aggregates.
package queries

import (
	"errors"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order together with its tracking journal.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID order.ID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) OrderID() order.ID { return q.orderID }

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderItemView is one order line.
type OrderItemView struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// TrackingEntryView is one journal entry.
type TrackingEntryView struct {
	Status    string
	Timestamp time.Time
	Location  string
	Note      string
}

// GetOrderQueryResponse is the read model of a single order.
type GetOrderQueryResponse struct {
	ID                  order.ID
	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	CustomerAddress     string
	CustomerLocation    *kernel.Location
	Items               []OrderItemView
	Total               float64
	DeliveryFee         float64
	Status              string
	RiderID             *kernel.UUID
	AssignmentExpiresAt *time.Time
	AssignmentAttempts  int
	DistanceKm          *float64
	ETAMinutes          *int
	Tracking            []TrackingEntryView
	CurrentLocation     string
	Rating              *int
	DeliveredAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
