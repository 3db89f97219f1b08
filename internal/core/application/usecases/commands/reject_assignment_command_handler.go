package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
)

// RejectAssignmentCommandHandler releases the order and frees the rider in one transaction.
type RejectAssignmentCommandHandler struct {
	uowFactory UoWFactory
}

func NewRejectAssignmentCommandHandler(uowFactory UoWFactory) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{uowFactory: uowFactory}
}

func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) (*order.Order, error) {
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

	now := time.Now().UTC()
	if err = o.Reject(cmd.RiderID(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = releaseRider(ctx, uow, cmd.RiderID(), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// releaseRider sets a busy rider back to available. Riders in any other status
// are left alone and not written.
func releaseRider(ctx context.Context, uow RiderRepoFactory, riderID kernel.UUID, now time.Time) error {
	riderRepo := uow.RiderRepository()

	r, err := riderRepo.Get(ctx, riderID)
	if err != nil {
		return err
	}

	if !r.Release(now) {
		return nil
	}

	return riderRepo.Update(ctx, r)
}
