package http

import (
	"net/http"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/application/usecases/queries"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"

	"github.com/labstack/echo/v4"
)

type RegisterRiderRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
	LicenseNumber string `json:"license_number"`
	AreaCoverage  string `json:"area_coverage"`
}

type DeliveryStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Note     string `json:"note"`
}

type RiderStatusRequest struct {
	Status   string    `json:"status"`
	Location *Location `json:"location"`
}

// RegisterRider handles POST /api/riders.
func (s *Server) RegisterRider(c echo.Context) error {
	var req RegisterRiderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	vehicle, err := rider.ParseVehicleType(req.VehicleType)
	if err != nil {
		return err
	}

	cmd := commands.NewRegisterRiderCommand(rider.Registration{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		VehicleType:   vehicle,
		VehicleNumber: req.VehicleNumber,
		LicenseNumber: req.LicenseNumber,
		AreaCoverage:  req.AreaCoverage,
	})

	r, err := s.handlers.RegisterRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toRider(r))
}

// ListPendingAssignments handles GET /api/rider/orders/pending.
func (s *Server) ListPendingAssignments(c echo.Context) error {
	riderID, err := riderIDFrom(c)
	if err != nil {
		return err
	}

	now := s.now()
	query, err := queries.NewGetPendingAssignmentsQuery(riderID, now)
	if err != nil {
		return err
	}

	rows, err := s.handlers.GetPendingAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPendingAssignments(rows, now))
}

// ConfirmAssignment handles POST /api/rider/orders/:id/confirm-assignment.
func (s *Server) ConfirmAssignment(c echo.Context) error {
	riderID, err := riderIDFrom(c)
	if err != nil {
		return err
	}
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptAssignmentCommand(id, riderID)
	if err != nil {
		return err
	}

	o, err := s.handlers.AcceptAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(o))
}

// RejectAssignment handles POST /api/rider/orders/:id/reject.
func (s *Server) RejectAssignment(c echo.Context) error {
	riderID, err := riderIDFrom(c)
	if err != nil {
		return err
	}
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectAssignmentCommand(id, riderID)
	if err != nil {
		return err
	}

	o, err := s.handlers.RejectAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrder(o))
}

// UpdateDeliveryStatus handles PUT /api/rider/orders/:id/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	riderID, err := riderIDFrom(c)
	if err != nil {
		return err
	}
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var req DeliveryStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(id, riderID, status, req.Location, req.Note)
	if err != nil {
		return err
	}

	result, err := s.handlers.UpdateDeliveryStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StatusUpdateResponse{
		OrderID:        result.Order.ID().String(),
		PreviousStatus: result.Previous.String(),
		NewStatus:      result.Current.String(),
		TrackingInfo:   toTracking(result.Order.Tracking()),
	})
}

// UpdateRiderStatus handles PUT /api/rider/status.
func (s *Server) UpdateRiderStatus(c echo.Context) error {
	riderID, err := riderIDFrom(c)
	if err != nil {
		return err
	}

	var req RiderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	status, err := rider.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	location, err := req.Location.toKernel()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateRiderStatusCommand(riderID, status, location)
	if err != nil {
		return err
	}

	r, err := s.handlers.UpdateRiderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRider(r))
}

// GetEarnings handles GET /api/rider/earnings?limit=n.
func (s *Server) GetEarnings(c echo.Context) error {
	riderID, err := riderIDFrom(c)
	if err != nil {
		return err
	}
	limit, err := optionalIntQuery(c, "limit")
	if err != nil {
		return err
	}

	query, err := queries.NewGetRiderEarningsQuery(riderID, limit)
	if err != nil {
		return err
	}

	summary, err := s.handlers.GetRiderEarnings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEarnings(summary))
}

// ModerateRider handles POST /api/admin/riders/:id/:action.
func (s *Server) ModerateRider(c echo.Context) error {
	id, err := riderIDParam(c)
	if err != nil {
		return err
	}
	action, err := bindPathString(c, "action")
	if err != nil {
		return err
	}

	cmd, err := commands.NewModerateRiderCommand(id, commands.ModerationAction(action))
	if err != nil {
		return err
	}

	r, err := s.handlers.ModerateRider.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRider(r))
}

// ExpireAssignments handles POST /api/admin/assignments/expire.
func (s *Server) ExpireAssignments(c echo.Context) error {
	cmd, err := commands.NewExpireAssignmentsCommand(s.now())
	if err != nil {
		return err
	}

	ids, err := s.handlers.ExpireAssignments.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	expired := make([]string, 0, len(ids))
	for _, id := range ids {
		expired = append(expired, id.String())
	}
	return c.JSON(http.StatusOK, ExpireResponse{Expired: expired})
}
