package events

import (
	"context"
	"log/slog"

	"gasfill/internal/core/domain/model/order"
)

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		msg := NewOrderChanged(e)
		p.logger.InfoContext(ctx, "order event",
			slog.String("type", msg.Type),
			slog.String("order_id", msg.OrderID),
			slog.String("rider_id", msg.RiderID),
			slog.String("from", msg.FromStatus),
			slog.String("to", msg.ToStatus),
		)
	}
	return nil
}
