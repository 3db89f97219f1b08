package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/application/usecases/queries"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/core/domain/services"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type mockHandler[C, R any] struct {
	mock.Mock
}

func (m *mockHandler[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	args := m.Called(ctx, cmd)
	var result R
	if r, ok := args.Get(0).(R); ok {
		result = r
	}
	return result, args.Error(1)
}

type fixture struct {
	echo    *echo.Echo
	server  *Server
	metrics *metrics.Metrics
	now     time.Time

	createOrder  *mockHandler[commands.CreateOrderCommand, *order.Order]
	assignRider  *mockHandler[commands.AssignRiderCommand, commands.AssignRiderResult]
	accept       *mockHandler[commands.AcceptAssignmentCommand, *order.Order]
	reject       *mockHandler[commands.RejectAssignmentCommand, *order.Order]
	updateStatus *mockHandler[commands.UpdateDeliveryStatusCommand, commands.UpdateDeliveryStatusResult]
	cancel       *mockHandler[commands.CancelOrderCommand, *order.Order]
	rate         *mockHandler[commands.RateOrderCommand, *order.Order]
	expire       *mockHandler[commands.ExpireAssignmentsCommand, []order.ID]
	register     *mockHandler[commands.RegisterRiderCommand, *rider.Rider]
	riderStatus  *mockHandler[commands.UpdateRiderStatusCommand, *rider.Rider]
	moderate     *mockHandler[commands.ModerateRiderCommand, *rider.Rider]
	getOrder     *mockHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	pending      *mockHandler[queries.GetPendingAssignmentsQuery, []queries.PendingAssignmentResponse]
	earnings     *mockHandler[queries.GetRiderEarningsQuery, queries.GetRiderEarningsQueryResponse]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		now:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		createOrder:  new(mockHandler[commands.CreateOrderCommand, *order.Order]),
		assignRider:  new(mockHandler[commands.AssignRiderCommand, commands.AssignRiderResult]),
		accept:       new(mockHandler[commands.AcceptAssignmentCommand, *order.Order]),
		reject:       new(mockHandler[commands.RejectAssignmentCommand, *order.Order]),
		updateStatus: new(mockHandler[commands.UpdateDeliveryStatusCommand, commands.UpdateDeliveryStatusResult]),
		cancel:       new(mockHandler[commands.CancelOrderCommand, *order.Order]),
		rate:         new(mockHandler[commands.RateOrderCommand, *order.Order]),
		expire:       new(mockHandler[commands.ExpireAssignmentsCommand, []order.ID]),
		register:     new(mockHandler[commands.RegisterRiderCommand, *rider.Rider]),
		riderStatus:  new(mockHandler[commands.UpdateRiderStatusCommand, *rider.Rider]),
		moderate:     new(mockHandler[commands.ModerateRiderCommand, *rider.Rider]),
		getOrder:     new(mockHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]),
		pending:      new(mockHandler[queries.GetPendingAssignmentsQuery, []queries.PendingAssignmentResponse]),
		earnings:     new(mockHandler[queries.GetRiderEarningsQuery, queries.GetRiderEarningsQueryResponse]),
	}

	reg := prometheus.NewRegistry()
	f.metrics = metrics.New(reg)
	f.server = NewServer(Handlers{
		CreateOrder:           f.createOrder,
		AssignRider:           f.assignRider,
		AcceptAssignment:      f.accept,
		RejectAssignment:      f.reject,
		UpdateDeliveryStatus:  f.updateStatus,
		CancelOrder:           f.cancel,
		RateOrder:             f.rate,
		ExpireAssignments:     f.expire,
		RegisterRider:         f.register,
		UpdateRiderStatus:     f.riderStatus,
		ModerateRider:         f.moderate,
		GetOrder:              f.getOrder,
		GetPendingAssignments: f.pending,
		GetRiderEarnings:      f.earnings,
	}, NewAuthenticator(testSecret), f.metrics)
	f.server.now = func() time.Time { return f.now }

	e, err := NewEcho(context.Background(), f.server, Options{
		Logger:   slog.New(slog.DiscardHandler),
		Gatherer: reg,
	})
	require.NoError(t, err)
	f.echo = e

	return f
}

func (f *fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, role Role, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newTestOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Kwame Mensah", "+233201234567", "", "12 Ring Rd, Accra")
	require.NoError(t, err)
	item, err := order.NewItem("12.5kg refill", 1, 150)
	require.NoError(t, err)
	o, err := order.NewOrder(order.NewID(), customer, []order.Item{item}, nil, 12.5, now)
	require.NoError(t, err)
	return o
}

func newTestRider(t *testing.T, now time.Time) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), rider.Registration{
		Name:        "Ama Owusu",
		Phone:       "+233240000001",
		VehicleType: rider.Motorcycle,
	}, now)
	require.NoError(t, err)
	return r
}

const createOrderBody = `{
	"customer": {"name": "Kwame Mensah", "phone": "+233201234567", "address": "12 Ring Rd, Accra",
		"location": {"latitude": 5.6037, "longitude": -0.1870}},
	"items": [{"name": "12.5kg refill", "quantity": 2, "unit_price": 150}]
}`

func TestCreateOrder_ReturnsCreatedOrder(t *testing.T) {
	f := newFixture(t)
	o := newTestOrder(t, f.now)
	f.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Customer().Name() == "Kwame Mensah" && len(cmd.Items()) == 1 && cmd.Location() != nil
	})).Return(o, nil).Once()

	rec := f.do(http.MethodPost, "/api/orders", createOrderBody, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, o.ID().String(), body.ID)
	assert.Equal(t, "pending", body.Status)
	f.createOrder.AssertExpectations(t)
}

func TestCreateOrder_SchemaViolation_NeverReachesHandler(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/orders",
		`{"customer": {"name": "Kwame", "phone": "+233201234567", "address": "Accra"}, "items": []}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
	f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOrder_UnknownOrder_Returns404(t *testing.T) {
	f := newFixture(t)
	f.getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("order", "ORD-missing")).Once()

	rec := f.do(http.MethodGet, "/api/orders/ORD-missing", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Contains(t, body.Message, "ORD-missing")
}

func TestGetOrder_MalformedID_Returns400(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/orders/12345", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestAssignRider_ReturnsOrderRiderAndDeadline(t *testing.T) {
	f := newFixture(t)
	o := newTestOrder(t, f.now)
	r := newTestRider(t, f.now)
	distance, eta := 2.4, 5
	expiresAt := f.now.Add(30 * time.Second)
	require.NoError(t, o.Assign(r.ID(), expiresAt, &distance, &eta, f.now))

	f.assignRider.On("Handle", mock.Anything, mock.Anything).Return(commands.AssignRiderResult{
		Order: o,
		Assignment: services.Assignment{
			Rider:      r,
			DistanceKm: &distance,
			ETAMinutes: &eta,
			ExpiresAt:  expiresAt,
		},
	}, nil).Once()

	rec := f.do(http.MethodPost, "/api/orders/"+o.ID().String()+"/assign", "", signToken(t, RoleAdmin, "ops"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body AssignmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "assigned", body.Order.Status)
	assert.Equal(t, r.ID().String(), body.Rider.ID)
	require.NotNil(t, body.ETAMinutes)
	assert.Equal(t, 5, *body.ETAMinutes)
	assert.True(t, expiresAt.Equal(body.ExpiresAt))
	assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.Assignments.WithLabelValues(metrics.ResultAssigned)), 0)
}

func TestAssignRider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		result string
	}{
		{"no rider available", services.ErrNoRiderAvailable, http.StatusBadRequest, metrics.ResultNoRider},
		{"order not pending", errs.NewPreconditionFailedError("order is not pending"), http.StatusBadRequest, metrics.ResultError},
		{"lost race", errs.NewConflictError("rider", "r-1"), http.StatusConflict, metrics.ResultConflict},
		{"unknown order", errs.NewObjectNotFoundError("order", "ORD-1"), http.StatusNotFound, metrics.ResultError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.assignRider.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/orders/ORD-1/assign", "", signToken(t, RoleAdmin, "ops"))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, decodeError(t, rec).Code)
			assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.Assignments.WithLabelValues(tt.result)), 0)
		})
	}
}

func TestAssignRider_RequiresAdmin(t *testing.T) {
	tests := []struct {
		name   string
		token  func(t *testing.T) string
		status int
	}{
		{"no token", func(*testing.T) string { return "" }, http.StatusUnauthorized},
		{"rider token", func(t *testing.T) string { return signToken(t, RoleRider, kernel.NewUUID().String()) }, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/api/orders/ORD-1/assign", "", tt.token(t))

			assert.Equal(t, tt.status, rec.Code)
			f.assignRider.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestCancelOrder_WithoutBody(t *testing.T) {
	f := newFixture(t)
	o := newTestOrder(t, f.now)
	require.NoError(t, o.Cancel("", f.now))
	f.cancel.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelOrderCommand) bool {
		return cmd.OrderID() == o.ID()
	})).Return(o, nil).Once()

	rec := f.do(http.MethodPost, "/api/orders/"+o.ID().String()+"/cancel", "", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestRateOrder_OutOfRangeRejectedBySchema(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/orders/ORD-1/rating", `{"rating": 6}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.rate.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestRiderRoutes_Authentication(t *testing.T) {
	riderID := kernel.NewUUID()

	tests := []struct {
		name string
		token  func(t *testing.T) string
		status int
	}{
		{"missing token", func(*testing.T) string { return "" }, http.StatusUnauthorized},
		{"garbage token", func(*testing.T) string { return "not-a-jwt" }, http.StatusUnauthorized},
		{"admin token", func(t *testing.T) string { return signToken(t, RoleAdmin, "ops") }, http.StatusForbidden},
		{"rider token without uuid subject", func(t *testing.T) string { return signToken(t, RoleRider, "ama") }, http.StatusUnauthorized},
		{"rider token", func(t *testing.T) string { return signToken(t, RoleRider, riderID.String()) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.pending.On("Handle", mock.Anything, mock.Anything).Return([]queries.PendingAssignmentResponse{}, nil).Maybe()

			rec := f.do(http.MethodGet, "/api/rider/orders/pending", "", tt.token(t))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestListPendingAssignments_UsesTokenRiderAndCountsDown(t *testing.T) {
	f := newFixture(t)
	riderID := kernel.NewUUID()
	f.pending.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPendingAssignmentsQuery) bool {
		return q.RiderID() == riderID && q.Now().Equal(f.now)
	})).Return([]queries.PendingAssignmentResponse{{
		OrderID:             "ORD-7",
		CustomerName:        "Kwame Mensah",
		Items:               []queries.OrderItemView{{Name: "6kg refill", Quantity: 2, UnitPrice: 80}},
		AssignmentExpiresAt: f.now.Add(20 * time.Second),
	}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/rider/orders/pending", "", signToken(t, RoleRider, riderID.String()))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body []PendingAssignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "ORD-7", body[0].OrderID)
	assert.Equal(t, 20, body[0].SecondsRemaining)
	assert.InDelta(t, 160.0, body[0].Items[0].Subtotal, 1e-9)
}

func TestConfirmAssignment(t *testing.T) {
	riderID := kernel.NewUUID()

	t.Run("accepted", func(t *testing.T) {
		f := newFixture(t)
		o := newTestOrder(t, f.now)
		require.NoError(t, o.Assign(riderID, f.now.Add(time.Minute), nil, nil, f.now))
		require.NoError(t, o.Accept(riderID, f.now))
		f.accept.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AcceptAssignmentCommand) bool {
			return cmd.RiderID() == riderID && cmd.OrderID() == o.ID()
		})).Return(o, nil).Once()

		rec := f.do(http.MethodPost, "/api/rider/orders/"+o.ID().String()+"/confirm-assignment", "",
			signToken(t, RoleRider, riderID.String()))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Nil(t, body.AssignmentExpiresAt)
		f.accept.AssertExpectations(t)
	})

	t.Run("assigned to someone else", func(t *testing.T) {
		f := newFixture(t)
		f.accept.On("Handle", mock.Anything, mock.Anything).Return(nil, order.ErrNotAssignedToRider).Once()

		rec := f.do(http.MethodPost, "/api/rider/orders/ORD-1/confirm-assignment", "",
			signToken(t, RoleRider, riderID.String()))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, order.ErrNotAssignedToRider.Error(), decodeError(t, rec).Message)
	})

	t.Run("deadline passed", func(t *testing.T) {
		f := newFixture(t)
		f.accept.On("Handle", mock.Anything, mock.Anything).Return(nil, order.ErrAssignmentExpired).Once()

		rec := f.do(http.MethodPost, "/api/rider/orders/ORD-1/confirm-assignment", "",
			signToken(t, RoleRider, riderID.String()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRejectAssignment_ReturnsPendingOrder(t *testing.T) {
	f := newFixture(t)
	riderID := kernel.NewUUID()
	o := newTestOrder(t, f.now)
	f.reject.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RejectAssignmentCommand) bool {
		return cmd.RiderID() == riderID
	})).Return(o, nil).Once()

	rec := f.do(http.MethodPost, "/api/rider/orders/"+o.ID().String()+"/reject", "",
		signToken(t, RoleRider, riderID.String()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestUpdateDeliveryStatus(t *testing.T) {
	riderID := kernel.NewUUID()

	t.Run("advances", func(t *testing.T) {
		f := newFixture(t)
		o := newTestOrder(t, f.now)
		require.NoError(t, o.Assign(riderID, f.now.Add(time.Minute), nil, nil, f.now))
		f.updateStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateDeliveryStatusCommand) bool {
			return cmd.Status() == order.Pickup && cmd.Location() == "Osu depot" && cmd.RiderID() == riderID
		})).Return(commands.UpdateDeliveryStatusResult{
			Order:    o,
			Previous: order.Assigned,
			Current:  order.Pickup,
		}, nil).Once()

		rec := f.do(http.MethodPut, "/api/rider/orders/"+o.ID().String()+"/status",
			`{"status": "pickup", "location": "Osu depot"}`, signToken(t, RoleRider, riderID.String()))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body StatusUpdateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "assigned", body.PreviousStatus)
		assert.Equal(t, "pickup", body.NewStatus)
		assert.NotEmpty(t, body.TrackingInfo.Entries)
	})

	t.Run("invalid transition", func(t *testing.T) {
		f := newFixture(t)
		f.updateStatus.On("Handle", mock.Anything, mock.Anything).
			Return(nil, &order.InvalidTransitionError{From: order.Assigned, To: order.Delivered}).Once()

		rec := f.do(http.MethodPut, "/api/rider/orders/ORD-1/status",
			`{"status": "delivered"}`, signToken(t, RoleRider, riderID.String()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "assigned -> delivered")
	})

	t.Run("unknown status rejected by schema", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/rider/orders/ORD-1/status",
			`{"status": "teleported"}`, signToken(t, RoleRider, riderID.String()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.updateStatus.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestUpdateRiderStatus_PassesLocation(t *testing.T) {
	f := newFixture(t)
	r := newTestRider(t, f.now)
	f.riderStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateRiderStatusCommand) bool {
		return cmd.RiderID() == r.ID() && cmd.Status() == rider.Available &&
			cmd.Location() != nil && cmd.Location().Latitude() == 5.6
	})).Return(r, nil).Once()

	rec := f.do(http.MethodPut, "/api/rider/status",
		`{"status": "available", "location": {"latitude": 5.6, "longitude": -0.18}}`,
		signToken(t, RoleRider, r.ID().String()))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f.riderStatus.AssertExpectations(t)
}

func TestGetEarnings(t *testing.T) {
	riderID := kernel.NewUUID()

	t.Run("summary", func(t *testing.T) {
		f := newFixture(t)
		f.earnings.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRiderEarningsQuery) bool {
			return q.RiderID() == riderID && q.Recent() == 5
		})).Return(queries.GetRiderEarningsQueryResponse{
			RiderID:             riderID,
			PendingTotal:        10,
			Total:               10,
			CompletedDeliveries: 1,
			Recent:              []queries.EarningView{{OrderID: "ORD-1", DeliveryFee: 12.5, CommissionRate: 0.8, Amount: 10, Status: "pending"}},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/rider/earnings?limit=5", "", signToken(t, RoleRider, riderID.String()))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body EarningsSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.InDelta(t, 10.0, body.PendingTotal, 1e-9)
		require.Len(t, body.Recent, 1)
		assert.Equal(t, "ORD-1", body.Recent[0].OrderID)
	})

	t.Run("limit above maximum", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/rider/earnings?limit=500", "", signToken(t, RoleRider, riderID.String()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.earnings.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestRegisterRider_Created(t *testing.T) {
	f := newFixture(t)
	r := newTestRider(t, f.now)
	f.register.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterRiderCommand) bool {
		return cmd.Registration().VehicleType == rider.Motorcycle
	})).Return(r, nil).Once()

	rec := f.do(http.MethodPost, "/api/riders",
		`{"name": "Ama Owusu", "phone": "+233240000001", "vehicle_type": "motorcycle"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"offline"`)
}

func TestAdminRoutes(t *testing.T) {
	t.Run("rider token is forbidden", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/admin/assignments/expire", "",
			signToken(t, RoleRider, kernel.NewUUID().String()))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("expire returns reverted ids", func(t *testing.T) {
		f := newFixture(t)
		f.expire.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExpireAssignmentsCommand) bool {
			return cmd.Now().Equal(f.now)
		})).Return([]order.ID{"ORD-1", "ORD-2"}, nil).Once()

		rec := f.do(http.MethodPost, "/api/admin/assignments/expire", "", signToken(t, RoleAdmin, "ops"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"expired": ["ORD-1", "ORD-2"]}`, rec.Body.String())
	})

	t.Run("moderate", func(t *testing.T) {
		f := newFixture(t)
		r := newTestRider(t, f.now)
		r.Verify(f.now)
		f.moderate.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ModerateRiderCommand) bool {
			return cmd.RiderID() == r.ID() && cmd.Action() == commands.ActionVerify
		})).Return(r, nil).Once()

		rec := f.do(http.MethodPost, "/api/admin/riders/"+r.ID().String()+"/verify", "", signToken(t, RoleAdmin, "ops"))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"is_verified":true`)
	})

	t.Run("unknown action rejected by schema", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/admin/riders/"+kernel.NewUUID().String()+"/promote", "",
			signToken(t, RoleAdmin, "ops"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.moderate.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestOperationalEndpoints(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "", "").Code)

	f.do(http.MethodGet, "/api/orders/bad", "", "")
	rec := f.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gasfill_http_request_duration_seconds")

	rec = f.do(http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GasFill delivery API")
}
