// Package ports defines the persistence and messaging contracts the application
// layer depends on. Adapters under internal/adapters implement them.
package ports

import (
	"context"
	"time"

	"gasfill/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order back if its stored version still matches the
	// version it was loaded with. A stale write returns *errs.ConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns *errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// ListExpiredAssignments returns assigned, unconfirmed orders whose
	// deadline is before now, oldest deadline first.
	ListExpiredAssignments(ctx context.Context, now time.Time) ([]*order.Order, error)
}
