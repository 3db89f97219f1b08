package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand records the customer's 1..5 score for a delivered order.
type RateOrderCommand struct {
	orderID order.ID
	score   int

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID order.ID, score int) (RateOrderCommand, error) {
	var scoreErr error
	if score < order.RatingMin || score > order.RatingMax {
		scoreErr = errs.NewValueIsOutOfRangeError("rating", score, order.RatingMin, order.RatingMax)
	}
	if err := errors.Join(orderID.Validate(), scoreErr); err != nil {
		return RateOrderCommand{}, err
	}
	return RateOrderCommand{
		orderID: orderID,
		score:   score,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() order.ID { return c.orderID }
func (c RateOrderCommand) Score() int        { return c.score }
