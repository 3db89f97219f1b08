package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary spanning all repositories.
// Repositories obtained after Begin share its transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction and then publishes the domain events of
	// every order written through it.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit returns an error
	// that callers deferring it may ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	RiderRepository() RiderRepository
	EarningRepository() EarningRepository
}
