// Package earningrepo persists rider commissions in the rider_earnings table.
package earningrepo

import (
	"time"

	"gasfill/internal/core/domain/model/earning"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type EarningDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RiderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	DeliveryFee    float64   `gorm:"type:numeric(12,2);not null"`
	CommissionRate float64   `gorm:"type:numeric(4,3);not null"`
	Amount         float64   `gorm:"type:numeric(12,2);not null"`
	Status         string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt      time.Time
}

func (EarningDTO) TableName() string {
	return "rider_earnings"
}

func fromDomain(e *earning.Earning) EarningDTO {
	return EarningDTO{
		ID:             e.ID().Bytes(),
		RiderID:        e.RiderID().Bytes(),
		OrderID:        e.OrderID().String(),
		DeliveryFee:    e.DeliveryFee(),
		CommissionRate: e.CommissionRate(),
		Amount:         e.Amount(),
		Status:         string(e.Status()),
		CreatedAt:      e.CreatedAt(),
	}
}

func toDomain(dto EarningDTO) (*earning.Earning, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := order.ParseID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	return earning.RestoreEarning(earning.RestoreParams{
		ID:             id,
		RiderID:        riderID,
		OrderID:        orderID,
		DeliveryFee:    dto.DeliveryFee,
		CommissionRate: dto.CommissionRate,
		Amount:         dto.Amount,
		Status:         earning.Status(dto.Status),
		CreatedAt:      dto.CreatedAt.UTC(),
	})
}
