package http

import (
	"time"

	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/application/usecases/queries"
	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Customer struct {
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email,omitempty"`
	Address  string    `json:"address"`
	Location *Location `json:"location,omitempty"`
}

type Item struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type TrackingEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
}

type TrackingInfo struct {
	Entries         []TrackingEntry `json:"entries"`
	CurrentLocation string          `json:"current_location,omitempty"`
}

type Order struct {
	ID                  string       `json:"id"`
	Customer            Customer     `json:"customer"`
	Items               []Item       `json:"items"`
	Total               float64      `json:"total"`
	DeliveryFee         float64      `json:"delivery_fee"`
	Status              string       `json:"status"`
	RiderID             *string      `json:"rider_id,omitempty"`
	AssignmentExpiresAt *time.Time   `json:"assignment_expires_at,omitempty"`
	AssignmentAttempts  int          `json:"assignment_attempts"`
	DistanceKm          *float64     `json:"distance_km,omitempty"`
	ETAMinutes          *int         `json:"estimated_time_minutes,omitempty"`
	TrackingInfo        TrackingInfo `json:"tracking_info"`
	Rating              *int         `json:"rating,omitempty"`
	DeliveredAt         *time.Time   `json:"delivered_at,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

type Rider struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	VehicleType     string    `json:"vehicle_type"`
	VehicleNumber   string    `json:"vehicle_number,omitempty"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	AreaCoverage    string    `json:"area_coverage,omitempty"`
	Status          string    `json:"status"`
	Location        *Location `json:"location,omitempty"`
	Rating          float64   `json:"rating"`
	RatingCount     int       `json:"rating_count"`
	TotalDeliveries int       `json:"total_deliveries"`
	IsActive        bool      `json:"is_active"`
	IsVerified      bool      `json:"is_verified"`
	IsSuspended     bool      `json:"is_suspended"`
	CreatedAt       time.Time `json:"created_at"`
}

type AssignmentResponse struct {
	Order      Order     `json:"order"`
	Rider      Rider     `json:"rider"`
	DistanceKm *float64  `json:"distance_km,omitempty"`
	ETAMinutes *int      `json:"estimated_time_minutes,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type StatusUpdateResponse struct {
	OrderID        string       `json:"order_id"`
	PreviousStatus string       `json:"previous_status"`
	NewStatus      string       `json:"new_status"`
	TrackingInfo   TrackingInfo `json:"tracking_info"`
}

type PendingAssignment struct {
	OrderID             string    `json:"order_id"`
	Customer            Customer  `json:"customer"`
	Items               []Item    `json:"items"`
	Total               float64   `json:"total"`
	DeliveryFee         float64   `json:"delivery_fee"`
	DistanceKm          *float64  `json:"distance_km,omitempty"`
	ETAMinutes          *int      `json:"estimated_time_minutes,omitempty"`
	AssignmentExpiresAt time.Time `json:"assignment_expires_at"`
	SecondsRemaining    int       `json:"seconds_remaining"`
	CreatedAt           time.Time `json:"created_at"`
}

type Earning struct {
	OrderID        string    `json:"order_id"`
	DeliveryFee    float64   `json:"delivery_fee"`
	CommissionRate float64   `json:"commission_rate"`
	Amount         float64   `json:"amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type EarningsSummary struct {
	RiderID             string    `json:"rider_id"`
	PendingTotal        float64   `json:"pending_total"`
	PaidTotal           float64   `json:"paid_total"`
	Total               float64   `json:"total"`
	CompletedDeliveries int       `json:"completed_deliveries"`
	Recent              []Earning `json:"recent"`
}

type ExpireResponse struct {
	Expired []string `json:"expired"`
}

func toLocation(loc *kernel.Location) *Location {
	if loc == nil {
		return nil
	}
	return &Location{Latitude: loc.Latitude(), Longitude: loc.Longitude()}
}

func toTracking(t order.TrackingInfo) TrackingInfo {
	entries := make([]TrackingEntry, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, TrackingEntry{
			Status:    e.Status.String(),
			Timestamp: e.Timestamp,
			Location:  e.Location,
			Note:      e.Note,
		})
	}
	return TrackingInfo{Entries: entries, CurrentLocation: t.CurrentLocation}
}

func toOrder(o *order.Order) Order {
	c := o.Customer()
	items := make([]Item, 0, len(o.Items()))
	for _, i := range o.Items() {
		items = append(items, Item{
			Name:      i.Name(),
			Quantity:  i.Quantity(),
			UnitPrice: i.UnitPrice(),
			Subtotal:  i.Subtotal(),
		})
	}

	var riderID *string
	if id := o.RiderID(); id != nil {
		s := id.String()
		riderID = &s
	}

	return Order{
		ID: o.ID().String(),
		Customer: Customer{
			Name:     c.Name(),
			Phone:    c.Phone(),
			Email:    c.Email(),
			Address:  c.Address(),
			Location: toLocation(o.CustomerLocation()),
		},
		Items:               items,
		Total:               o.Total(),
		DeliveryFee:         o.DeliveryFee(),
		Status:              o.Status().String(),
		RiderID:             riderID,
		AssignmentExpiresAt: o.AssignmentExpiresAt(),
		AssignmentAttempts:  o.AssignmentAttempts(),
		DistanceKm:          o.DistanceKm(),
		ETAMinutes:          o.ETAMinutes(),
		TrackingInfo:        toTracking(o.Tracking()),
		Rating:              o.Rating(),
		DeliveredAt:         o.DeliveredAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

func toItemViews(views []queries.OrderItemView) []Item {
	items := make([]Item, 0, len(views))
	for _, v := range views {
		items = append(items, Item{
			Name:      v.Name,
			Quantity:  v.Quantity,
			UnitPrice: v.UnitPrice,
			Subtotal:  float64(v.Quantity) * v.UnitPrice,
		})
	}
	return items
}

func toOrderView(r queries.GetOrderQueryResponse) Order {
	entries := make([]TrackingEntry, 0, len(r.Tracking))
	for _, e := range r.Tracking {
		entries = append(entries, TrackingEntry(e))
	}

	var riderID *string
	if r.RiderID != nil {
		s := r.RiderID.String()
		riderID = &s
	}

	return Order{
		ID: r.ID.String(),
		Customer: Customer{
			Name:     r.CustomerName,
			Phone:    r.CustomerPhone,
			Email:    r.CustomerEmail,
			Address:  r.CustomerAddress,
			Location: toLocation(r.CustomerLocation),
		},
		Items:               toItemViews(r.Items),
		Total:               r.Total,
		DeliveryFee:         r.DeliveryFee,
		Status:              r.Status,
		RiderID:             riderID,
		AssignmentExpiresAt: r.AssignmentExpiresAt,
		AssignmentAttempts:  r.AssignmentAttempts,
		DistanceKm:          r.DistanceKm,
		ETAMinutes:          r.ETAMinutes,
		TrackingInfo:        TrackingInfo{Entries: entries, CurrentLocation: r.CurrentLocation},
		Rating:              r.Rating,
		DeliveredAt:         r.DeliveredAt,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func toRider(r *rider.Rider) Rider {
	return Rider{
		ID:              r.ID().String(),
		Name:            r.Name(),
		Phone:           r.Phone(),
		Email:           r.Email(),
		VehicleType:     string(r.VehicleType()),
		VehicleNumber:   r.VehicleNumber(),
		LicenseNumber:   r.LicenseNumber(),
		AreaCoverage:    r.AreaCoverage(),
		Status:          r.Status().String(),
		Location:        toLocation(r.Location()),
		Rating:          r.Rating(),
		RatingCount:     r.RatingCount(),
		TotalDeliveries: r.TotalDeliveries(),
		IsActive:        r.IsActive(),
		IsVerified:      r.IsVerified(),
		IsSuspended:     r.IsSuspended(),
		CreatedAt:       r.CreatedAt(),
	}
}

func toAssignment(res commands.AssignRiderResult) AssignmentResponse {
	return AssignmentResponse{
		Order:      toOrder(res.Order),
		Rider:      toRider(res.Assignment.Rider),
		DistanceKm: res.Assignment.DistanceKm,
		ETAMinutes: res.Assignment.ETAMinutes,
		ExpiresAt:  res.Assignment.ExpiresAt,
	}
}

func toPendingAssignments(rows []queries.PendingAssignmentResponse, now time.Time) []PendingAssignment {
	out := make([]PendingAssignment, 0, len(rows))
	for _, r := range rows {
		remaining := int(r.AssignmentExpiresAt.Sub(now).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, PendingAssignment{
			OrderID: r.OrderID.String(),
			Customer: Customer{
				Name:     r.CustomerName,
				Phone:    r.CustomerPhone,
				Address:  r.CustomerAddress,
				Location: toLocation(r.CustomerLocation),
			},
			Items:               toItemViews(r.Items),
			Total:               r.Total,
			DeliveryFee:         r.DeliveryFee,
			DistanceKm:          r.DistanceKm,
			ETAMinutes:          r.ETAMinutes,
			AssignmentExpiresAt: r.AssignmentExpiresAt,
			SecondsRemaining:    remaining,
			CreatedAt:           r.CreatedAt,
		})
	}
	return out
}

func toEarnings(r queries.GetRiderEarningsQueryResponse) EarningsSummary {
	recent := make([]Earning, 0, len(r.Recent))
	for _, e := range r.Recent {
		recent = append(recent, Earning{
			OrderID:        e.OrderID.String(),
			DeliveryFee:    e.DeliveryFee,
			CommissionRate: e.CommissionRate,
			Amount:         e.Amount,
			Status:         e.Status,
			CreatedAt:      e.CreatedAt,
		})
	}
	return EarningsSummary{
		RiderID:             r.RiderID.String(),
		PendingTotal:        r.PendingTotal,
		PaidTotal:           r.PaidTotal,
		Total:               r.Total,
		CompletedDeliveries: r.CompletedDeliveries,
		Recent:              recent,
	}
}
