package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand asks the dispatcher to reserve a rider for a pending order.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand("ORD-ck9x0q1")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoRiderAvailable) {
//	    // order stays pending, try again later
//	}
type AssignRiderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewAssignRiderCommand(orderID order.ID) (AssignRiderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignRiderCommand{}, err
	}
	return AssignRiderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

func (c AssignRiderCommand) OrderID() order.ID {
	return c.orderID
}
