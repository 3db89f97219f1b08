package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_phone,
			customer_email,
			customer_address,
			customer_lat,
			customer_lng,
			items,
			total,
			delivery_fee,
			status,
			rider_id,
			assignment_expires_at,
			assignment_attempts,
			distance_km,
			estimated_time_minutes,
			tracking_info,
			current_location,
			rating,
			delivered_at,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		res             GetOrderQueryResponse
		id              string
		lat, lng        sql.NullFloat64
		itemsRaw        []byte
		riderID         *uuid.UUID
		expiresAt       sql.NullTime
		distance        sql.NullFloat64
		eta, rating     sql.NullInt64
		trackingRaw     []byte
		currentLocation sql.NullString
		deliveredAt     sql.NullTime
		createdAt       time.Time
		updatedAt       time.Time
	)
	err := row.Scan(
		&id,
		&res.CustomerName,
		&res.CustomerPhone,
		&res.CustomerEmail,
		&res.CustomerAddress,
		&lat,
		&lng,
		&itemsRaw,
		&res.Total,
		&res.DeliveryFee,
		&res.Status,
		&riderID,
		&expiresAt,
		&res.AssignmentAttempts,
		&distance,
		&eta,
		&trackingRaw,
		&currentLocation,
		&rating,
		&deliveredAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	res.ID = order.ID(id)
	res.CreatedAt = createdAt.UTC()
	res.UpdatedAt = updatedAt.UTC()
	res.CurrentLocation = currentLocation.String
	res.AssignmentExpiresAt = nullTimePtr(expiresAt)
	res.DeliveredAt = nullTimePtr(deliveredAt)
	res.DistanceKm = nullFloatPtr(distance)
	res.ETAMinutes = nullIntPtr(eta)
	res.Rating = nullIntPtr(rating)

	if lat.Valid && lng.Valid {
		loc, locErr := kernel.NewLocation(lat.Float64, lng.Float64)
		if locErr != nil {
			return GetOrderQueryResponse{}, locErr
		}
		res.CustomerLocation = &loc
	}

	if riderID != nil {
		rID, idErr := kernel.UUIDFromBytes(riderID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		res.RiderID = &rID
	}

	if res.Items, err = decodeItems(itemsRaw); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if res.Tracking, err = decodeTracking(trackingRaw); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return res, nil
}

func decodeItems(raw []byte) ([]OrderItemView, error) {
	var rows []struct {
		Name      string  `json:"name"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
	}

	items := make([]OrderItemView, 0, len(rows))
	for _, r := range rows {
		items = append(items, OrderItemView{Name: r.Name, Quantity: r.Quantity, UnitPrice: r.UnitPrice})
	}
	return items, nil
}

func decodeTracking(raw []byte) ([]TrackingEntryView, error) {
	var rows []struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Location  string    `json:"location"`
		Note      string    `json:"note"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
	}

	entries := make([]TrackingEntryView, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, TrackingEntryView{
			Status:    r.Status,
			Timestamp: r.Timestamp.UTC(),
			Location:  r.Location,
			Note:      r.Note,
		})
	}
	return entries, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullFloatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func nullIntPtr(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int64)
	return &v
}
