package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/domain/model/earning"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListExpiredAssignments(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) ListAvailable(ctx context.Context) ([]*rider.Rider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

type MockEarningRepository struct{ mock.Mock }

func (m *MockEarningRepository) Add(ctx context.Context, e *earning.Earning) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUoW satisfies every unit-of-work view used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) EarningRepository() ports.EarningRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Abena Mensah", "+233241234567", "abena@example.com", "12 Ring Road, Osu")
	require.NoError(t, err)
	return c
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("14.5kg refill", 1, 180)
	require.NoError(t, err)
	return []order.Item{item}
}

func testLocation(t *testing.T, lat, lng float64) *kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return &loc
}

func pendingOrder(t *testing.T, loc *kernel.Location) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewID(), testCustomer(t), testItems(t), loc, 12, time.Now().UTC())
	require.NoError(t, err)
	return o
}

// assignedOrder returns an order reserved for riderID with a deadline of now+ttl.
// A negative ttl yields an already expired reservation.
func assignedOrder(t *testing.T, riderID kernel.UUID, ttl time.Duration) *order.Order {
	t.Helper()
	o := pendingOrder(t, nil)
	assignedAt := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, o.Assign(riderID, assignedAt.Add(time.Hour+ttl), nil, nil, assignedAt))
	o.ClearDomainEvents()
	return o
}

func acceptedOrder(t *testing.T, riderID kernel.UUID) *order.Order {
	t.Helper()
	o := assignedOrder(t, riderID, time.Minute)
	require.NoError(t, o.Accept(riderID, time.Now().UTC()))
	return o
}

func availableRider(t *testing.T, loc *kernel.Location, rating float64) *rider.Rider {
	t.Helper()
	r, err := rider.RestoreRider(rider.RestoreParams{
		ID: kernel.NewUUID(),
		Registration: rider.Registration{
			Name:        "Kofi Asante",
			Phone:       "+233209876543",
			VehicleType: rider.Motorcycle,
		},
		Status:     rider.Available,
		Location:   loc,
		Rating:     rating,
		IsActive:   true,
		IsVerified: true,
	})
	require.NoError(t, err)
	return r
}

func busyRider(t *testing.T) *rider.Rider {
	t.Helper()
	r := availableRider(t, nil, rider.DefaultRating)
	require.NoError(t, r.Reserve(time.Now().UTC()))
	return r
}
