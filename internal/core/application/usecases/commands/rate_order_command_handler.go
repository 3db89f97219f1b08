package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/order"
)

// RateOrderCommandHandler stores the order rating and folds it into the
// delivering rider's running mean.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewRateOrderCommandHandler(uowFactory UoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{uowFactory: uowFactory}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
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
	riderRepo := uow.RiderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = o.Rate(cmd.Score(), now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	r, err := riderRepo.Get(ctx, *o.RiderID())
	if err != nil {
		return nil, err
	}

	if err = r.AddRating(cmd.Score(), now); err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
