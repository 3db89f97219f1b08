// Package events delivers committed order events to the outside world.
package events

import (
	"context"
	"encoding/json"
	"time"

	"gasfill/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 2 * time.Second

// OrderChanged is the wire format of every published order event.
type OrderChanged struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	RiderID    string    `json:"rider_id,omitempty"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOrderChanged(e order.Event) OrderChanged {
	msg := OrderChanged{
		Type:       string(e.Type),
		OrderID:    e.OrderID.String(),
		FromStatus: e.From.String(),
		ToStatus:   e.To.String(),
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.RiderID != nil {
		msg.RiderID = e.RiderID.String()
	}
	return msg
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes OrderChanged messages keyed by order id, so all events
// of one order land on the same partition in commit order.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.Hash{}})
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(NewOrderChanged(e))
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(e.OrderID.String()), Value: b})
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
