// Package commands holds the state-changing use cases. Every handler validates
// its command, opens a unit of work, loads aggregates, applies domain methods
// and commits. Handlers never retry; a *errs.ConflictError surfaces to the caller.
package commands

import (
	"context"

	"gasfill/internal/core/ports"
)

// Narrow unit-of-work views let each handler declare the repositories it touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	EarningRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	// OrderUoW is used by commands that touch orders only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RiderUoW is used by commands that touch riders only.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// UoW spans orders, riders and earnings for the assignment workflow.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//   // load, mutate, update
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		RiderRepoFactory
		EarningRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
