package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/earning"
	"gasfill/internal/core/domain/model/order"
)

// UpdateDeliveryStatusResult carries the status before and after the update.
// Tracking is read from Order.
type UpdateDeliveryStatusResult struct {
	Order    *order.Order
	Previous order.Status
	Current  order.Status
}

// UpdateDeliveryStatusCommandHandler applies a rider's status update.
//
// Side effects by target status:
//   - pending: the rider is released, as with a rejection
//   - delivered: the rider is freed, its delivery count grows and an earning
//     of delivery fee * commission rate is recorded
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory     UoWFactory
	commissionRate float64
}

func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory, commissionRate float64) UpdateDeliveryStatusCommandHandler {
	if commissionRate <= 0 || commissionRate > 1 {
		commissionRate = earning.DefaultCommissionRate
	}
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:     uowFactory,
		commissionRate: commissionRate,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (UpdateDeliveryStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	now := time.Now().UTC()
	previous, err := o.UpdateStatus(cmd.RiderID(), cmd.Status(), cmd.Location(), cmd.Note(), now)
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	switch cmd.Status() {
	case order.Pending:
		err = releaseRider(ctx, uow, cmd.RiderID(), now)
	case order.Delivered:
		err = h.completeDelivery(ctx, uow, o, now)
	}
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	return UpdateDeliveryStatusResult{Order: o, Previous: previous, Current: o.Status()}, nil
}

func (h UpdateDeliveryStatusCommandHandler) completeDelivery(ctx context.Context, uow UoW, o *order.Order, now time.Time) error {
	riderRepo := uow.RiderRepository()

	r, err := riderRepo.Get(ctx, *o.RiderID())
	if err != nil {
		return err
	}

	r.CompleteDelivery(now)
	if err = riderRepo.Update(ctx, r); err != nil {
		return err
	}

	e, err := earning.ForDelivery(o, h.commissionRate, now)
	if err != nil {
		return err
	}

	return uow.EarningRepository().Add(ctx, e)
}
