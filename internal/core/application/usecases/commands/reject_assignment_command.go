package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

// RejectAssignmentCommand hands an assigned order back to the pending pool.
// Re-assignment is a separate AssignRiderCommand.
type RejectAssignmentCommand struct {
	orderID order.ID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRejectAssignmentCommand(orderID order.ID, riderID kernel.UUID) (RejectAssignmentCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return RejectAssignmentCommand{}, err
	}
	return RejectAssignmentCommand{
		orderID: orderID,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) OrderID() order.ID    { return c.orderID }
func (c RejectAssignmentCommand) RiderID() kernel.UUID { return c.riderID }
