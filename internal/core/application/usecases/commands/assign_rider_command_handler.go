package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/services"
)

// AssignRiderResult is the order after assignment plus the dispatch details.
type AssignRiderResult struct {
	Order      *order.Order
	Assignment services.Assignment
}

// AssignRiderCommandHandler runs the dispatcher inside one transaction so the
// order and rider writes commit together.
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.RiderDispatcher
}

func NewAssignRiderCommandHandler(uowFactory UoWFactory, dispatcher services.RiderDispatcher) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order,
// services.ErrNoRiderAvailable when nobody qualifies and *errs.ConflictError
// when a concurrent writer got to the order or the rider first.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (AssignRiderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignRiderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignRiderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	riderRepo := uow.RiderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return AssignRiderResult{}, err
	}

	riders, err := riderRepo.ListAvailable(ctx)
	if err != nil {
		return AssignRiderResult{}, err
	}

	assignment, err := h.dispatcher.Dispatch(o, riders, time.Now().UTC())
	if err != nil {
		return AssignRiderResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AssignRiderResult{}, err
	}

	if err = riderRepo.Update(ctx, assignment.Rider); err != nil {
		return AssignRiderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignRiderResult{}, err
	}

	return AssignRiderResult{Order: o, Assignment: assignment}, nil
}
