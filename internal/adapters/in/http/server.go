// Package http exposes the order and rider use cases over REST with echo.
//
// Routes live under /api. Rider routes require a bearer token with role rider
// and act on behalf of the rider named in its subject; admin routes require
// role admin. Every request under /api is validated against the embedded
// OpenAPI document, which is also served through swagger UI.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/application/usecases/queries"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Use case ports consumed by the handlers.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	AssignRiderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignRiderCommand) (commands.AssignRiderResult, error)
	}

	AcceptAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptAssignmentCommand) (*order.Order, error)
	}

	RejectAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.RejectAssignmentCommand) (*order.Order, error)
	}

	UpdateDeliveryStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) (commands.UpdateDeliveryStatusResult, error)
	}

	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}

	RateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.RateOrderCommand) (*order.Order, error)
	}

	ExpireAssignmentsHandler interface {
		Handle(ctx context.Context, cmd commands.ExpireAssignmentsCommand) ([]order.ID, error)
	}

	RegisterRiderHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterRiderCommand) (*rider.Rider, error)
	}

	UpdateRiderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateRiderStatusCommand) (*rider.Rider, error)
	}

	ModerateRiderHandler interface {
		Handle(ctx context.Context, cmd commands.ModerateRiderCommand) (*rider.Rider, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	GetPendingAssignmentsHandler interface {
		Handle(ctx context.Context, query queries.GetPendingAssignmentsQuery) ([]queries.PendingAssignmentResponse, error)
	}

	GetRiderEarningsHandler interface {
		Handle(ctx context.Context, query queries.GetRiderEarningsQuery) (queries.GetRiderEarningsQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	AssignRider          AssignRiderHandler
	AcceptAssignment     AcceptAssignmentHandler
	RejectAssignment     RejectAssignmentHandler
	UpdateDeliveryStatus UpdateDeliveryStatusHandler
	CancelOrder          CancelOrderHandler
	RateOrder            RateOrderHandler
	ExpireAssignments    ExpireAssignmentsHandler
	RegisterRider        RegisterRiderHandler
	UpdateRiderStatus    UpdateRiderStatusHandler
	ModerateRider        ModerateRiderHandler

	GetOrder              GetOrderHandler
	GetPendingAssignments GetPendingAssignmentsHandler
	GetRiderEarnings      GetRiderEarningsHandler
}

// Server holds the route handlers.
type Server struct {
	handlers Handlers
	auth     *Authenticator
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewServer(handlers Handlers, auth *Authenticator, m *metrics.Metrics) *Server {
	return &Server{
		handlers: handlers,
		auth:     auth,
		metrics:  m,
		now:      time.Now,
	}
}

// Options configure the echo instance built by NewEcho.
type Options struct {
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// NewEcho builds the echo instance with middleware, docs, health and metrics
// endpoints and every API route.
func NewEcho(ctx context.Context, s *Server, opts Options) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	if s.metrics != nil {
		e.Use(RecordDuration(s.metrics))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
	})

	s.RegisterRoutes(e, validator.Middleware())
	return e, nil
}

// RegisterRoutes mounts the API. Authentication runs before request validation
// so unauthenticated callers never learn about schema details.
func (s *Server) RegisterRoutes(e *echo.Echo, validate echo.MiddlewareFunc) {
	public := e.Group("/api", validate)
	public.POST("/orders", s.CreateOrder)
	public.GET("/orders/:id", s.GetOrder)
	public.POST("/orders/:id/cancel", s.CancelOrder)
	public.POST("/orders/:id/rating", s.RateOrder)
	public.POST("/riders", s.RegisterRider)

	riders := e.Group("/api/rider", s.auth.Require(RoleRider), validate)
	riders.GET("/orders/pending", s.ListPendingAssignments)
	riders.POST("/orders/:id/confirm-assignment", s.ConfirmAssignment)
	riders.POST("/orders/:id/reject", s.RejectAssignment)
	riders.PUT("/orders/:id/status", s.UpdateDeliveryStatus)
	riders.PUT("/status", s.UpdateRiderStatus)
	riders.GET("/earnings", s.GetEarnings)

	// Dispatch keeps its order-scoped path but is an operator action.
	e.POST("/api/orders/:id/assign", s.AssignRider, s.auth.Require(RoleAdmin), validate)

	admin := e.Group("/api/admin", s.auth.Require(RoleAdmin), validate)
	admin.POST("/riders/:id/:action", s.ModerateRider)
	admin.POST("/assignments/expire", s.ExpireAssignments)
}
