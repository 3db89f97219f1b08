package earningrepo

import (
	"context"
	"errors"

	"gasfill/internal/core/domain/model/earning"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEarningRepository implements ports.EarningRepository using GORM.
type GormEarningRepository struct {
	db *gorm.DB
}

func NewGormEarningRepository(db *gorm.DB) *GormEarningRepository {
	return &GormEarningRepository{db: db}
}

// Add appends an earning. An order earns its rider at most once; a second
// earning for the same order returns *errs.ConflictError.
func (r *GormEarningRepository) Add(ctx context.Context, aggregate *earning.Earning) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("earning", dto.OrderID)
		}
		return err
	}

	return nil
}

// GetByOrder returns the earning recorded for an order.
func (r *GormEarningRepository) GetByOrder(ctx context.Context, orderID order.ID) (*earning.Earning, error) {
	var dto EarningDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("earning", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
