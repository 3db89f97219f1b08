package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/services"
)

// CreateOrderCommandHandler prices and stores a new pending order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	fees       services.FeeCalculator
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, fees services.FeeCalculator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		fees:       fees,
	}
}

// Handle computes the delivery fee from the customer location and persists the
// order in pending.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	fee := h.fees.Fee(cmd.Location(), cmd.Total())
	o, err := order.NewOrder(order.NewID(), cmd.Customer(), cmd.Items(), cmd.Location(), fee, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
