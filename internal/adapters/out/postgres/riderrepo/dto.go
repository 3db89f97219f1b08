// Package riderrepo persists rider aggregates in the riders table.
package riderrepo

import (
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

type RiderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email         string    `gorm:"type:varchar(255)"`
	VehicleType   string    `gorm:"type:varchar(20);not null"`
	VehicleNumber string    `gorm:"type:varchar(32)"`
	LicenseNumber string    `gorm:"type:varchar(64)"`
	AreaCoverage  string    `gorm:"type:text"`

	Status    string `gorm:"type:varchar(20);not null;index"`
	Latitude  *float64
	Longitude *float64

	Rating          float64 `gorm:"type:numeric(3,2);not null"`
	RatingCount     int     `gorm:"not null;default:0"`
	TotalDeliveries int     `gorm:"not null;default:0"`
	IsActive        bool    `gorm:"not null"`
	IsVerified      bool    `gorm:"not null"`
	IsSuspended     bool    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int `gorm:"not null;default:0"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	dto := RiderDTO{
		ID:              r.ID().Bytes(),
		Name:            r.Name(),
		Phone:           r.Phone(),
		Email:           r.Email(),
		VehicleType:     string(r.VehicleType()),
		VehicleNumber:   r.VehicleNumber(),
		LicenseNumber:   r.LicenseNumber(),
		AreaCoverage:    r.AreaCoverage(),
		Status:          r.Status().String(),
		Rating:          r.Rating(),
		RatingCount:     r.RatingCount(),
		TotalDeliveries: r.TotalDeliveries(),
		IsActive:        r.IsActive(),
		IsVerified:      r.IsVerified(),
		IsSuspended:     r.IsSuspended(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
		Version:         r.Version(),
	}

	if loc := r.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

// updateColumns covers the state a rider can change after registration.
func (dto RiderDTO) updateColumns() map[string]any {
	return map[string]any{
		"status":           dto.Status,
		"latitude":         dto.Latitude,
		"longitude":        dto.Longitude,
		"rating":           dto.Rating,
		"rating_count":     dto.RatingCount,
		"total_deliveries": dto.TotalDeliveries,
		"is_active":        dto.IsActive,
		"is_verified":      dto.IsVerified,
		"is_suspended":     dto.IsSuspended,
		"updated_at":       dto.UpdatedAt,
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return rider.RestoreRider(rider.RestoreParams{
		ID: id,
		Registration: rider.Registration{
			Name:          dto.Name,
			Phone:         dto.Phone,
			Email:         dto.Email,
			VehicleType:   rider.VehicleType(dto.VehicleType),
			VehicleNumber: dto.VehicleNumber,
			LicenseNumber: dto.LicenseNumber,
			AreaCoverage:  dto.AreaCoverage,
		},
		Status:          rider.Status(dto.Status),
		Location:        location,
		Rating:          dto.Rating,
		RatingCount:     dto.RatingCount,
		TotalDeliveries: dto.TotalDeliveries,
		IsActive:        dto.IsActive,
		IsVerified:      dto.IsVerified,
		IsSuspended:     dto.IsSuspended,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
		Version:         dto.Version,
	})
}
