package commands

import (
	"context"
	"log/slog"
	"time"

	"gasfill/internal/core/domain/model/order"
)

// ExpireAssignmentsCommandHandler reverts unconfirmed assignments whose deadline
// passed. Each order is released in its own transaction; a failing order is
// logged and skipped so it never blocks the rest of the sweep.
type ExpireAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewExpireAssignmentsCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ExpireAssignmentsCommandHandler {
	return ExpireAssignmentsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "expire_assignments"),
	}
}

// Handle returns the ids of the orders it reverted. Only a failure to list the
// candidates is returned as an error.
func (h ExpireAssignmentsCommandHandler) Handle(ctx context.Context, cmd ExpireAssignmentsCommand) ([]order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.listExpired(ctx, cmd.Now())
	if err != nil {
		return nil, err
	}

	expired := make([]order.ID, 0, len(candidates))
	for _, id := range candidates {
		released, expireErr := h.expireOne(ctx, id, cmd.Now())
		if expireErr != nil {
			h.logger.ErrorContext(ctx, "failed to expire assignment", "order_id", id, "error", expireErr)
			continue
		}
		if released {
			expired = append(expired, id)
		}
	}

	if len(expired) > 0 {
		h.logger.InfoContext(ctx, "expired stale assignments", "count", len(expired))
	}
	return expired, nil
}

func (h ExpireAssignmentsCommandHandler) listExpired(ctx context.Context, now time.Time) ([]order.ID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListExpiredAssignments(ctx, now)
	if err != nil {
		return nil, err
	}

	ids := make([]order.ID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

// expireOne reloads the order so an accept that landed after the listing wins.
func (h ExpireAssignmentsCommandHandler) expireOne(ctx context.Context, id order.ID, now time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !o.IsAssignmentExpired(now) {
		return false, nil
	}

	riderID, err := o.Expire(now)
	if err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = releaseRider(ctx, uow, riderID, now); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
