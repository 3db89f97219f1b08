package commands

import (
	"errors"
	"strings"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

const defaultCancelReason = "cancelled by customer"

// CancelOrderCommand withdraws an order that has not been assigned yet.
type CancelOrderCommand struct {
	orderID order.ID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand falls back to a generic reason when none is given.
func NewCancelOrderCommand(orderID order.ID, reason string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultCancelReason
	}
	return CancelOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() order.ID { return c.orderID }
func (c CancelOrderCommand) Reason() string    { return c.reason }
