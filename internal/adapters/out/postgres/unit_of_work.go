// Package postgres implements the Unit of Work over GORM. A unit of work owns one
// database transaction, hands out repositories bound to it and publishes the
// domain events of written orders once the transaction has committed.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.RiderRepository().Update(ctx, r); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency:
//   - A UnitOfWork is not safe for concurrent use; create one per command.
//   - Concurrent writers to the same aggregate are detected by the version
//     guard in the repositories and surface as *errs.ConflictError.
package postgres

import (
	"context"
	"log/slog"

	"gasfill/internal/adapters/out/postgres/earningrepo"
	"gasfill/internal/adapters/out/postgres/orderrepo"
	"gasfill/internal/adapters/out/postgres/riderrepo"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool
// and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates the factory. A nil publisher disables event
// publishing; a nil logger falls back to slog.Default().
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	factory := NewGormUnitOfWorkFactory(db, kafkaPublisher, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork coordinates one transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
	tracked   []any
}

// Begin starts the transaction. Calling Begin again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit commits the transaction and then publishes the pending events of every
// order written through this unit of work. Publishing is best effort: failures
// are logged and never turn a successful commit into an error.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = nil
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked in it. After Commit
// it returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

// OrderRepository returns a repository bound to the open transaction, or to the
// plain connection when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RiderRepository() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) EarningRepository() ports.EarningRepository {
	return earningrepo.NewGormEarningRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(aggregate any) {
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.tracked
	uow.tracked = nil

	seen := make(map[*order.Order]struct{}, len(tracked))
	var events []order.Event
	for _, aggregate := range tracked {
		o, ok := aggregate.(*order.Order)
		if !ok {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		events = append(events, o.DomainEvents()...)
		o.ClearDomainEvents()
	}

	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.WarnContext(ctx, "publish order events",
			slog.Int("events", len(events)),
			slog.String("error", err.Error()),
		)
	}
}
