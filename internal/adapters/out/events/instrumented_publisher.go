package events

import (
	"context"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/ports"
	"gasfill/internal/pkg/metrics"
)

// InstrumentedPublisher counts committed status transitions and publish results
// before delegating to the wrapped publisher.
type InstrumentedPublisher struct {
	next    ports.EventPublisher
	metrics *metrics.Metrics
}

func NewInstrumentedPublisher(next ports.EventPublisher, m *metrics.Metrics) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, metrics: m}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		if e.From != e.To {
			p.metrics.StatusTransitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
		}
	}

	if err := p.next.Publish(ctx, events...); err != nil {
		p.metrics.EventsPublished.WithLabelValues(metrics.PublishFailed).Add(float64(len(events)))
		return err
	}
	p.metrics.EventsPublished.WithLabelValues(metrics.PublishOK).Add(float64(len(events)))
	return nil
}
