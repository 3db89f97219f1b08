package queries

import (
	"errors"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

const (
	DefaultRecentEarnings = 20
	maxRecentEarnings     = 100
)

var ErrGetRiderEarningsQueryIsNotConstructed = errors.New(
	"GetRiderEarningsQuery must be created via NewGetRiderEarningsQuery constructor",
)

// GetRiderEarningsQuery summarises a rider's commission ledger.
type GetRiderEarningsQuery struct {
	riderID kernel.UUID
	recent  int

	guard guard.ConstructorGuard
}

// NewGetRiderEarningsQuery builds the query. recent limits the number of ledger
// entries returned; zero selects DefaultRecentEarnings.
func NewGetRiderEarningsQuery(riderID kernel.UUID, recent int) (GetRiderEarningsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	if recent == 0 {
		recent = DefaultRecentEarnings
	}
	if recent < 1 || recent > maxRecentEarnings {
		return GetRiderEarningsQuery{}, errs.NewValueIsOutOfRangeError("recent", recent, 1, maxRecentEarnings)
	}
	return GetRiderEarningsQuery{
		riderID: riderID,
		recent:  recent,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetRiderEarningsQuery) RiderID() kernel.UUID { return q.riderID }
func (q GetRiderEarningsQuery) Recent() int          { return q.recent }

func (q GetRiderEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEarningsQueryIsNotConstructed)
}

type EarningView struct {
	OrderID        order.ID
	DeliveryFee    float64
	CommissionRate float64
	Amount         float64
	Status         string
	CreatedAt      time.Time
}

type GetRiderEarningsQueryResponse struct {
	RiderID             kernel.UUID
	PendingTotal        float64
	PaidTotal           float64
	Total               float64
	CompletedDeliveries int
	Recent              []EarningView
}
