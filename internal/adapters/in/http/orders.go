package http

import (
	"errors"
	"net/http"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/application/usecases/queries"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/services"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type CustomerInput struct {
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Address  string    `json:"address"`
	Location *Location `json:"location"`
}

type ItemInput struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreateOrderRequest struct {
	Customer CustomerInput `json:"customer"`
	Items    []ItemInput   `json:"items"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type RatingRequest struct {
	Rating int `json:"rating"`
}

func (l *Location) toKernel() (*kernel.Location, error) {
	if l == nil {
		return nil, nil
	}
	loc, err := kernel.NewLocation(l.Latitude, l.Longitude)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	customer, err := order.NewCustomer(r.Customer.Name, r.Customer.Phone, r.Customer.Email, r.Customer.Address)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(r.Items))
	for _, in := range r.Items {
		item, err := order.NewItem(in.Name, in.Quantity, in.UnitPrice)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, item)
	}

	location, err := r.Customer.Location.toKernel()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(customer, items, location)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := req.toCommand()
	if err != nil {
		return err
	}

	o, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOrder(o))
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderView(view))
}

// AssignRider handles POST /api/orders/:id/assign. The route requires an admin token.
func (s *Server) AssignRider(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignRiderCommand(id)
	if err != nil {
		return err
	}

	result, err := s.handlers.AssignRider.Handle(c.Request().Context(), cmd)
	s.recordAssignment(err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAssignment(result))
}

func (s *Server) recordAssignment(err error) {
	if s.metrics == nil {
		return
	}

	result := metrics.ResultAssigned
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoRiderAvailable):
		result = metrics.ResultNoRider
	case errors.Is(err, errs.ErrConflict):
		result = metrics.ResultConflict
	default:
		result = metrics.ResultError
	}
	s.metrics.Assignments.WithLabelValues(result).Inc()
}

// CancelOrder handles POST /api/orders/:id/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var req CancelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(id, req.Reason)
	if err != nil {
		return err
	}

	o, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(o))
}

// RateOrder handles POST /api/orders/:id/rating.
func (s *Server) RateOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(id, req.Rating)
	if err != nil {
		return err
	}

	o, err := s.handlers.RateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(o))
}
