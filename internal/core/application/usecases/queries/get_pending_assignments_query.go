package queries

import (
	"errors"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrGetPendingAssignmentsQueryIsNotConstructed = errors.New(
	"GetPendingAssignmentsQuery must be created via NewGetPendingAssignmentsQuery constructor",
)

// GetPendingAssignmentsQuery lists the orders offered to a rider that still wait
// for the rider's answer. Riders poll it; an order drops out of the list once it
// is accepted, rejected or its deadline has passed.
type GetPendingAssignmentsQuery struct {
	riderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

func NewGetPendingAssignmentsQuery(riderID kernel.UUID, now time.Time) (GetPendingAssignmentsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetPendingAssignmentsQuery{}, err
	}
	return GetPendingAssignmentsQuery{
		riderID: riderID,
		now:     now,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetPendingAssignmentsQuery) RiderID() kernel.UUID { return q.riderID }
func (q GetPendingAssignmentsQuery) Now() time.Time       { return q.now }

func (q GetPendingAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingAssignmentsQueryIsNotConstructed)
}

// PendingAssignmentResponse carries what a rider needs to decide on an offer.
type PendingAssignmentResponse struct {
	OrderID             order.ID
	CustomerName        string
	CustomerPhone       string
	CustomerAddress     string
	CustomerLocation    *kernel.Location
	Items               []OrderItemView
	Total               float64
	DeliveryFee         float64
	DistanceKm          *float64
	ETAMinutes          *int
	AssignmentExpiresAt time.Time
	CreatedAt           time.Time
}
