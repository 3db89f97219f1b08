package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/order"
)

// AcceptAssignmentCommandHandler clears the reservation deadline. Only the
// order changes; the rider is already busy.
type AcceptAssignmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAcceptAssignmentCommandHandler(uowFactory OrderUoWFactory) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{uowFactory: uowFactory}
}

// Handle returns order.ErrNotAssignedToRider when another rider holds the order
// and order.ErrAssignmentExpired once the deadline has passed.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	wasAwaiting := o.IsAwaitingConfirmation()
	if err = o.Accept(cmd.RiderID(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if !wasAwaiting {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
