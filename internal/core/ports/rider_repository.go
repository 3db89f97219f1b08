package ports

import (
	"context"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/rider"
)

// RiderRepository persists rider aggregates.
type RiderRepository interface {
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update has the same version guard as OrderRepository.Update.
	Update(ctx context.Context, aggregate *rider.Rider) error

	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// ListAvailable returns riders eligible for assignment: available, active,
	// verified and not suspended.
	ListAvailable(ctx context.Context) ([]*rider.Rider, error)
}
