package commands

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/rider"
)

// ModerateRiderCommandHandler applies admin verify, suspend and reinstate actions.
type ModerateRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

func NewModerateRiderCommandHandler(uowFactory RiderUoWFactory) ModerateRiderCommandHandler {
	return ModerateRiderCommandHandler{uowFactory: uowFactory}
}

func (h ModerateRiderCommandHandler) Handle(ctx context.Context, cmd ModerateRiderCommand) (*rider.Rider, error) {
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
	switch cmd.Action() {
	case ActionVerify:
		r.Verify(now)
	case ActionSuspend:
		r.Suspend(now)
	case ActionReinstate:
		err = r.Reinstate(now)
	}
	if err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
