package queries

import (
	"context"
	"database/sql"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetPendingAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingAssignmentsQueryHandler(db *gorm.DB) GetPendingAssignmentsQueryHandler {
	return GetPendingAssignmentsQueryHandler{db: db}
}

// Handle returns the open offers of the rider, earliest deadline first. The
// result is never nil.
func (h GetPendingAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingAssignmentsQuery,
) ([]PendingAssignmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	assignments := make([]PendingAssignmentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			customer_phone,
			customer_address,
			customer_lat,
			customer_lng,
			items,
			total,
			delivery_fee,
			distance_km,
			estimated_time_minutes,
			assignment_expires_at,
			created_at
		FROM orders
		WHERE rider_id = ?
			AND status = ?
			AND assignment_expires_at IS NOT NULL
			AND assignment_expires_at > ?
		ORDER BY assignment_expires_at
	`, query.RiderID().Bytes(), order.Assigned.String(), query.Now()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a         PendingAssignmentResponse
			id        string
			lat, lng  sql.NullFloat64
			itemsRaw  []byte
			distance  sql.NullFloat64
			eta       sql.NullInt64
			expiresAt time.Time
			createdAt time.Time
		)

		err = rows.Scan(
			&id,
			&a.CustomerName,
			&a.CustomerPhone,
			&a.CustomerAddress,
			&lat,
			&lng,
			&itemsRaw,
			&a.Total,
			&a.DeliveryFee,
			&distance,
			&eta,
			&expiresAt,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		a.OrderID = order.ID(id)
		a.DistanceKm = nullFloatPtr(distance)
		a.ETAMinutes = nullIntPtr(eta)
		a.AssignmentExpiresAt = expiresAt.UTC()
		a.CreatedAt = createdAt.UTC()

		if lat.Valid && lng.Valid {
			loc, locErr := kernel.NewLocation(lat.Float64, lng.Float64)
			if locErr != nil {
				return nil, locErr
			}
			a.CustomerLocation = &loc
		}

		if a.Items, err = decodeItems(itemsRaw); err != nil {
			return nil, err
		}

		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
