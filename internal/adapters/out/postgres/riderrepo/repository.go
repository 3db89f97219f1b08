package riderrepo

import (
	"context"
	"errors"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
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

// Update is guarded by the version column like the order repository, so two
// orders racing for the same rider cannot both reserve it.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	columns := dto.updateColumns()
	columns["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
		}
		return errs.NewConflictError("rider", aggregate.ID().String())
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListAvailable returns the riders the dispatcher may choose from.
//
// A rider qualifies when it is available, active, verified and not suspended.
// Rows come back by rating, then delivery count, then id, so ties break the
// same way on every call.
//
// Returns:
//   - the riders, possibly none
//   - the first restore error if a stored row no longer forms a valid rider
func (r *GormRiderRepository) ListAvailable(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_active AND is_verified AND NOT is_suspended", rider.Available.String()).
		Order("rating DESC, total_deliveries DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}

	return riders, nil
}
