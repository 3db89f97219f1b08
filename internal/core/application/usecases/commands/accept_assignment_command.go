package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand confirms the reservation riderID holds on an order.
type AcceptAssignmentCommand struct {
	orderID order.ID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptAssignmentCommand(orderID order.ID, riderID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return AcceptAssignmentCommand{}, err
	}
	return AcceptAssignmentCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

func (c AcceptAssignmentCommand) OrderID() order.ID    { return c.orderID }
func (c AcceptAssignmentCommand) RiderID() kernel.UUID { return c.riderID }
