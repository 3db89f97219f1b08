package ports

import (
	"context"

	"gasfill/internal/core/domain/model/order"
)

// EventPublisher delivers order events after the transaction that produced them
// has committed. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
