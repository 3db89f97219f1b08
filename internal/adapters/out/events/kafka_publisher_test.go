package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func sampleEvents() []order.Event {
	riderID := kernel.NewUUID()
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return []order.Event{
		{Type: order.EventAssigned, OrderID: "ORD-a1", RiderID: &riderID, From: order.Pending, To: order.Assigned, OccurredAt: at},
		{Type: order.EventCancelled, OrderID: "ORD-b2", From: order.Pending, To: order.Cancelled, OccurredAt: at},
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := new(mockWriter)
	var written []kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "writes are bounded by a timeout")
			written = args.Get(1).([]kafka.Message)
		}).
		Return(nil).Once()
	p := &KafkaPublisher{writer: w}
	evts := sampleEvents()

	require.NoError(t, p.Publish(t.Context(), evts...))

	require.Len(t, written, 2)
	assert.Equal(t, "ORD-a1", string(written[0].Key))

	var msg OrderChanged
	require.NoError(t, json.Unmarshal(written[0].Value, &msg))
	assert.Equal(t, "order.assigned", msg.Type)
	assert.Equal(t, "pending", msg.FromStatus)
	assert.Equal(t, "assigned", msg.ToStatus)
	assert.Equal(t, evts[0].RiderID.String(), msg.RiderID)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(written[1].Value, &raw))
	assert.NotContains(t, raw, "rider_id")
	w.AssertExpectations(t)
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	w := new(mockWriter)
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Publish(t.Context()))
	w.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := new(mockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("leader not available"))
	p := &KafkaPublisher{writer: w}

	err := p.Publish(t.Context(), sampleEvents()...)

	require.EqualError(t, err, "leader not available")
}

func TestKafkaPublisher_Close(t *testing.T) {
	w := new(mockWriter)
	w.On("Close").Return(nil).Once()

	require.NoError(t, (&KafkaPublisher{writer: w}).Close())
	require.NoError(t, (&KafkaPublisher{}).Close())
	w.AssertExpectations(t)
}
