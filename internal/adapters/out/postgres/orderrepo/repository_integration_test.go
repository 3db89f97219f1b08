package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"gasfill/internal/adapters/out/postgres/orderrepo"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate any) {
	m.Called(aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(location *kernel.Location) *order.Order {
	customer, err := order.NewCustomer("Efua Sarpong", "+233244000111", "efua@example.com", "4 Oxford St, Osu")
	suite.Require().NoError(err)
	refill, err := order.NewItem("12.5kg refill", 2, 150)
	suite.Require().NoError(err)
	regulator, err := order.NewItem("regulator", 1, 45.5)
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.NewID(), customer, []order.Item{refill, regulator}, location,
		14, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	loc, err := kernel.NewLocation(5.6137, -0.1870)
	suite.Require().NoError(err)
	o := suite.newOrder(&loc)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal("Efua Sarpong", got.Customer().Name())
	suite.Equal("4 Oxford St, Osu", got.Customer().Address())
	suite.Require().Len(got.Items(), 2)
	suite.Equal("regulator", got.Items()[1].Name())
	suite.InDelta(345.5, got.Total(), 1e-9)
	suite.InDelta(14.0, got.DeliveryFee(), 1e-9)
	suite.Require().NotNil(got.CustomerLocation())
	suite.True(got.CustomerLocation().IsEqual(loc))
	suite.Equal(order.Pending, got.Status())
	suite.Nil(got.RiderID())
	suite.Empty(got.AssignedRiders())
	suite.Equal(0, got.Version())
	suite.Empty(got.DomainEvents(), "restored orders carry no events")
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_WithoutLocation() {
	ctx := context.Background()
	o := suite.newOrder(nil)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(got.CustomerLocation())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), "ORD-missing")

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsAssignmentAndBumpsVersion() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	riderID := kernel.NewUUID()
	now := time.Now().UTC()
	expiresAt := now.Add(30 * time.Second)
	distance := 1.25
	eta := 3
	suite.Require().NoError(loaded.Assign(riderID, expiresAt, &distance, &eta, now))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))
	suite.Equal(1, loaded.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, got.Status())
	suite.Require().NotNil(got.RiderID())
	suite.Equal(riderID, *got.RiderID())
	suite.Require().NotNil(got.AssignmentExpiresAt())
	suite.WithinDuration(expiresAt, *got.AssignmentExpiresAt(), time.Millisecond)
	suite.Equal(1, got.AssignmentAttempts())
	suite.Equal([]kernel.UUID{riderID}, got.AssignedRiders())
	suite.Require().NotNil(got.DistanceKm())
	suite.InDelta(1.25, *got.DistanceKm(), 1e-9)
	suite.Equal(3, *got.ETAMinutes())
	suite.Equal(1, got.Version())

	last, ok := got.Tracking().Last()
	suite.Require().True(ok)
	suite.Equal(order.Assigned, last.Status)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_TwiceInOneFlow() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	now := time.Now().UTC()
	suite.Require().NoError(o.Assign(riderID, now.Add(time.Minute), nil, nil, now))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Require().NoError(o.Accept(riderID, now))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(2, got.Version())
	suite.Nil(got.AssignmentExpiresAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(first.Assign(kernel.NewUUID(), now.Add(time.Minute), nil, nil, now))
	suite.Require().NoError(second.Assign(kernel.NewUUID(), now.Add(time.Minute), nil, nil, now))

	suite.Require().NoError(suite.repository.Update(ctx, first))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	got, getErr := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(getErr)
	suite.Equal(*first.RiderID(), *got.RiderID())
	suite.Equal(1, got.AssignmentAttempts())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	o := suite.newOrder(nil)

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListExpiredAssignments() {
	ctx := context.Background()
	now := time.Now().UTC()

	assign := func(ttl time.Duration, accept bool) *order.Order {
		riderID := kernel.NewUUID()
		o := suite.newOrder(nil)
		assignedAt := now.Add(-time.Hour)
		suite.Require().NoError(o.Assign(riderID, assignedAt.Add(time.Hour+ttl), nil, nil, assignedAt))
		if accept {
			suite.Require().NoError(o.Accept(riderID, assignedAt))
		}
		suite.Require().NoError(suite.repository.Add(ctx, o))
		return o
	}

	older := assign(-2*time.Minute, false)
	newer := assign(-10*time.Second, false)
	assign(time.Minute, false)
	assign(-time.Minute, true)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(nil)))

	expired, err := suite.repository.ListExpiredAssignments(ctx, now)

	suite.Require().NoError(err)
	suite.Require().Len(expired, 2)
	suite.Equal(older.ID(), expired[0].ID())
	suite.Equal(newer.ID(), expired[1].ID())
	for _, o := range expired {
		suite.True(o.IsAssignmentExpired(now))
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
