// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the row layout of the orders table. Customer fields are flattened;
// items and the tracking journal are stored as jsonb.
type OrderDTO struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	CustomerName    string `gorm:"type:varchar(255);not null"`
	CustomerPhone   string `gorm:"type:varchar(32);not null;index"`
	CustomerEmail   string `gorm:"type:varchar(255)"`
	CustomerAddress string `gorm:"type:text;not null"`
	CustomerLat     *float64
	CustomerLng     *float64

	Items       ItemsJSON `gorm:"type:jsonb;not null"`
	Total       float64   `gorm:"type:numeric(12,2);not null"`
	DeliveryFee float64   `gorm:"type:numeric(12,2);not null"`

	Status              string         `gorm:"type:varchar(20);not null;index"`
	RiderID             *uuid.UUID     `gorm:"type:uuid;index"`
	AssignmentExpiresAt *time.Time     `gorm:"index"`
	AssignmentAttempts  int            `gorm:"not null;default:0"`
	AssignedRiders      pq.StringArray `gorm:"type:text[]"`
	DistanceKm          *float64
	ETAMinutes          *int `gorm:"column:estimated_time_minutes"`

	TrackingInfo    TrackingJSON `gorm:"type:jsonb;not null"`
	CurrentLocation string       `gorm:"type:text"`

	Rating      *int
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type itemDTO struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ItemsJSON maps order lines to a jsonb column.
type ItemsJSON []itemDTO

func (j ItemsJSON) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *ItemsJSON) Scan(src any) error {
	return scanJSON(src, j)
}

type trackingEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// TrackingJSON maps the tracking journal to a jsonb column.
type TrackingJSON []trackingEntryDTO

func (j TrackingJSON) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *TrackingJSON) Scan(src any) error {
	return scanJSON(src, j)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into json column", src)
	}
}

func fromDomain(o *order.Order) OrderDTO {
	customer := o.Customer()
	dto := OrderDTO{
		ID:                  o.ID().String(),
		CustomerName:        customer.Name(),
		CustomerPhone:       customer.Phone(),
		CustomerEmail:       customer.Email(),
		CustomerAddress:     customer.Address(),
		Total:               o.Total(),
		DeliveryFee:         o.DeliveryFee(),
		Status:              o.Status().String(),
		AssignmentExpiresAt: o.AssignmentExpiresAt(),
		AssignmentAttempts:  o.AssignmentAttempts(),
		DistanceKm:          o.DistanceKm(),
		ETAMinutes:          o.ETAMinutes(),
		Rating:              o.Rating(),
		DeliveredAt:         o.DeliveredAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Version:             o.Version(),
	}

	if loc := o.CustomerLocation(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.CustomerLat = &lat
		dto.CustomerLng = &lng
	}

	if id := o.RiderID(); id != nil {
		raw := id.Bytes()
		dto.RiderID = &raw
	}

	dto.Items = make(ItemsJSON, 0, len(o.Items()))
	for _, item := range o.Items() {
		dto.Items = append(dto.Items, itemDTO{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	dto.AssignedRiders = make(pq.StringArray, 0, len(o.AssignedRiders()))
	for _, id := range o.AssignedRiders() {
		dto.AssignedRiders = append(dto.AssignedRiders, id.String())
	}

	tracking := o.Tracking()
	dto.CurrentLocation = tracking.CurrentLocation
	dto.TrackingInfo = make(TrackingJSON, 0, len(tracking.Entries))
	for _, e := range tracking.Entries {
		dto.TrackingInfo = append(dto.TrackingInfo, trackingEntryDTO{
			Status:    e.Status.String(),
			Timestamp: e.Timestamp,
			Location:  e.Location,
			Note:      e.Note,
		})
	}

	return dto
}

// updateColumns lists every mutable column for the versioned UPDATE. The version
// column itself is bumped by the repository.
func (dto OrderDTO) updateColumns() map[string]any {
	return map[string]any{
		"status":                 dto.Status,
		"rider_id":               dto.RiderID,
		"assignment_expires_at":  dto.AssignmentExpiresAt,
		"assignment_attempts":    dto.AssignmentAttempts,
		"assigned_riders":        dto.AssignedRiders,
		"distance_km":            dto.DistanceKm,
		"estimated_time_minutes": dto.ETAMinutes,
		"tracking_info":          dto.TrackingInfo,
		"current_location":       dto.CurrentLocation,
		"rating":                 dto.Rating,
		"delivered_at":           dto.DeliveredAt,
		"updated_at":             dto.UpdatedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.ParseID(dto.ID)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone, dto.CustomerEmail, dto.CustomerAddress)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		item, itemErr := order.NewItem(i.Name, i.Quantity, i.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var location *kernel.Location
	if dto.CustomerLat != nil && dto.CustomerLng != nil {
		loc, locErr := kernel.NewLocation(*dto.CustomerLat, *dto.CustomerLng)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, idErr := kernel.UUIDFromBytes(dto.RiderID[:])
		if idErr != nil {
			return nil, idErr
		}
		riderID = &rID
	}

	assigned := make([]kernel.UUID, 0, len(dto.AssignedRiders))
	for _, raw := range dto.AssignedRiders {
		rID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		assigned = append(assigned, rID)
	}

	tracking := make([]order.TrackingEntry, 0, len(dto.TrackingInfo))
	for _, e := range dto.TrackingInfo {
		tracking = append(tracking, order.TrackingEntry{
			Status:    order.Status(e.Status),
			Timestamp: e.Timestamp.UTC(),
			Location:  e.Location,
			Note:      e.Note,
		})
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                  id,
		Customer:            customer,
		Items:               items,
		Total:               dto.Total,
		DeliveryFee:         dto.DeliveryFee,
		CustomerLocation:    location,
		Status:              order.Status(dto.Status),
		RiderID:             riderID,
		AssignmentExpiresAt: utcPtr(dto.AssignmentExpiresAt),
		AssignmentAttempts:  dto.AssignmentAttempts,
		AssignedRiders:      assigned,
		DistanceKm:          dto.DistanceKm,
		ETAMinutes:          dto.ETAMinutes,
		Tracking:            tracking,
		CurrentLocation:     dto.CurrentLocation,
		Rating:              dto.Rating,
		DeliveredAt:         utcPtr(dto.DeliveredAt),
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
		Version:             dto.Version,
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
