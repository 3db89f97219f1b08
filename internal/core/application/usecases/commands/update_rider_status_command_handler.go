package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/rider"
)

type UpdateRiderStatusCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewUpdateRiderStatusCommandHandler(uowFactory RiderUoWFactory) UpdateRiderStatusCommandHandler {
	return UpdateRiderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns rider.ErrRiderSuspended for suspended riders.
func (h UpdateRiderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateRiderStatusCommand) (*rider.Rider, error) {
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

	riderRepo := uow.RiderRepository()

	r, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err = r.ChangeStatus(cmd.Status(), now); err != nil {
		return nil, err
	}
	if loc := cmd.Location(); loc != nil {
		if err = r.UpdateLocation(*loc, now); err != nil {
			return nil, err
		}
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
