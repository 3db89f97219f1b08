package orderrepo

import (
	"context"
	"errors"
	"time"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// It is created by the unit of work and bound to its transaction, so every read
// and write issued through one repository instance shares that transaction.
// Customer details, line items and the tracking journal are stored as JSON
// columns, and assigned_riders as a text[] column; see OrderDTO.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects written aggregates so the unit of work can publish
// their events after commit.
type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

// NewGormOrderRepository binds a repository to db: the open transaction of a
// unit of work, or its pool when no transaction has begun.
//
// Parameters:
//   - db: the *gorm.DB to issue queries on
//   - tracker: receives every order written, for event publishing after commit
//
// Example:
//
//	repo := orderrepo.NewGormOrderRepository(uow.conn(), uow)
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order. The aggregate must pass Validate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the order only if the stored version equals the loaded one and
// bumps the version on success. A stale version yields *errs.ConflictError.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	columns := dto.updateColumns()
	columns["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", dto.ID)
		}
		return errs.NewConflictError("order", dto.ID)
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get loads one order by its ORD- identifier.
//
// Returns:
//   - the restored aggregate, carrying the stored version for a later Update
//   - the validation error of id when it is malformed, before any query runs
//   - *errs.ObjectNotFoundError when no row matches
func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListExpiredAssignments returns assigned orders whose confirmation deadline is
// strictly before now, oldest deadline first. Accepted orders have no deadline
// and are never returned.
func (r *GormOrderRepository) ListExpiredAssignments(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND assignment_expires_at IS NOT NULL AND assignment_expires_at < ?", order.Assigned.String(), now).
		Order("assignment_expires_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
