package earning

import (
	"errors"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

// DefaultCommissionRate is the share of the delivery fee paid to the rider.
const DefaultCommissionRate = 0.8

type Status string

const (
	Pending Status = "pending"
	Paid    Status = "paid"
)

func (s Status) Validate() error {
	if s != Pending && s != Paid {
		return errs.NewValueIsInvalidError("earning status")
	}
	return nil
}

var ErrEarningIsNotConstructed = errors.New("Earning must be created via NewEarning constructor")

// Earning is the rider's commission for one delivered order.
type Earning struct {
	id             kernel.UUID
	riderID        kernel.UUID
	orderID        order.ID
	deliveryFee    float64
	commissionRate float64
	amount         float64
	status         Status
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewEarning records a pending commission of deliveryFee * commissionRate,
// rounded to two decimals.
func NewEarning(
	id kernel.UUID,
	riderID kernel.UUID,
	orderID order.ID,
	deliveryFee float64,
	commissionRate float64,
	now time.Time,
) (*Earning, error) {
	if err := errors.Join(
		id.Validate(),
		riderID.Validate(),
		orderID.Validate(),
		validateFee(deliveryFee),
		validateRate(commissionRate),
	); err != nil {
		return nil, err
	}

	return &Earning{
		id:             id,
		riderID:        riderID,
		orderID:        orderID,
		deliveryFee:    deliveryFee,
		commissionRate: commissionRate,
		amount:         kernel.RoundMoney(deliveryFee * commissionRate),
		status:         Pending,
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// ForDelivery records the commission for o, which must be delivered.
func ForDelivery(o *order.Order, commissionRate float64, now time.Time) (*Earning, error) {
	if o.Status() != order.Delivered || o.RiderID() == nil {
		return nil, errs.NewPreconditionFailedError("earnings are recorded for delivered orders only")
	}
	return NewEarning(kernel.NewUUID(), *o.RiderID(), o.ID(), o.DeliveryFee(), commissionRate, now)
}

type RestoreParams struct {
	ID             kernel.UUID
	RiderID        kernel.UUID
	OrderID        order.ID
	DeliveryFee    float64
	CommissionRate float64
	Amount         float64
	Status         Status
	CreatedAt      time.Time
}

func RestoreEarning(p RestoreParams) (*Earning, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.RiderID.Validate(),
		p.OrderID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Earning{
		id:             p.ID,
		riderID:        p.RiderID,
		orderID:        p.OrderID,
		deliveryFee:    p.DeliveryFee,
		commissionRate: p.CommissionRate,
		amount:         p.Amount,
		status:         p.Status,
		createdAt:      p.CreatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (e *Earning) Validate() error {
	if e == nil {
		return ErrEarningIsNotConstructed
	}
	return e.guard.Validate(ErrEarningIsNotConstructed)
}

func (e *Earning) ID() kernel.UUID         { return e.id }
func (e *Earning) RiderID() kernel.UUID    { return e.riderID }
func (e *Earning) OrderID() order.ID       { return e.orderID }
func (e *Earning) DeliveryFee() float64    { return e.deliveryFee }
func (e *Earning) CommissionRate() float64 { return e.commissionRate }
func (e *Earning) Amount() float64         { return e.amount }
func (e *Earning) Status() Status          { return e.status }
func (e *Earning) CreatedAt() time.Time    { return e.createdAt }

func validateFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsOutOfRangeError("delivery fee", fee, 0, "+inf")
	}
	return nil
}

func validateRate(rate float64) error {
	if rate <= 0 || rate > 1 {
		return errs.NewValueIsOutOfRangeError("commission rate", rate, "0 (exclusive)", 1)
	}
	return nil
}
