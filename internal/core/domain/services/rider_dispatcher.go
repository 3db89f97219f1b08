package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/pkg/errs"
)

// ErrNoRiderAvailable is returned when no eligible rider can take the order.
var ErrNoRiderAvailable = errors.New("no rider available")

const (
	// DefaultAssignmentTimeout is how long a rider has to confirm an assignment.
	DefaultAssignmentTimeout = 30 * time.Second

	minutesPerHour = 60.0
)

// Assignment is the outcome of a successful dispatch.
type Assignment struct {
	Rider      *rider.Rider
	DistanceKm *float64
	ETAMinutes *int
	ExpiresAt  time.Time
}

// RiderDispatcher picks a rider for a pending order and reserves both sides.
type RiderDispatcher struct {
	timeout       time.Duration
	maxDistanceKm float64
}

// NewRiderDispatcher configures the confirmation window and an optional
// distance cap (0 disables the cap). A non-positive timeout falls back to
// DefaultAssignmentTimeout.
func NewRiderDispatcher(timeout time.Duration, maxDistanceKm float64) RiderDispatcher {
	if timeout <= 0 {
		timeout = DefaultAssignmentTimeout
	}
	if maxDistanceKm < 0 {
		maxDistanceKm = 0
	}
	return RiderDispatcher{
		timeout:       timeout,
		maxDistanceKm: maxDistanceKm,
	}
}

// Dispatch selects a rider from riders, marks it busy and assigns the order to it.
// Both aggregates are left untouched on error.
func (d RiderDispatcher) Dispatch(o *order.Order, riders []*rider.Rider, now time.Time) (Assignment, error) {
	if err := o.Validate(); err != nil {
		return Assignment{}, err
	}
	if o.Status() != order.Pending || o.RiderID() != nil {
		return Assignment{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("order %s is %s, only pending orders can be assigned", o.ID(), o.Status()))
	}

	candidate, err := d.SelectRider(o, riders)
	if err != nil {
		return Assignment{}, err
	}

	expiresAt := now.Add(d.timeout)
	if err = candidate.Rider.Reserve(now); err != nil {
		return Assignment{}, err
	}
	if err = o.Assign(candidate.Rider.ID(), expiresAt, candidate.DistanceKm, candidate.ETAMinutes, now); err != nil {
		candidate.Rider.Release(now)
		return Assignment{}, err
	}

	candidate.ExpiresAt = expiresAt
	return candidate, nil
}

// SelectRider applies the selection policy without mutating anything.
//
// Riders not yet offered this order are preferred; once everyone eligible has
// been tried the whole eligible set is used again. With a customer location,
// the nearest located rider wins (ties: higher rating, then more deliveries);
// riders without a location are used only if no located rider qualifies.
// Without a customer location riders are ranked by rating, then deliveries.
func (d RiderDispatcher) SelectRider(o *order.Order, riders []*rider.Rider) (Assignment, error) {
	eligible := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if r.Validate() == nil && r.IsEligible() {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return Assignment{}, ErrNoRiderAvailable
	}

	pool := make([]*rider.Rider, 0, len(eligible))
	for _, r := range eligible {
		if !o.WasOfferedTo(r.ID()) {
			pool = append(pool, r)
		}
	}
	if len(pool) == 0 {
		pool = eligible
	}

	target := o.CustomerLocation()
	if target == nil {
		return Assignment{Rider: bestByRating(pool)}, nil
	}

	var (
		nearest      *rider.Rider
		nearestDist  = math.MaxFloat64
		withoutPlace []*rider.Rider
	)
	for _, r := range pool {
		loc := r.Location()
		if loc == nil {
			withoutPlace = append(withoutPlace, r)
			continue
		}
		dist := loc.DistanceKm(*target)
		if d.maxDistanceKm > 0 && dist > d.maxDistanceKm {
			continue
		}
		if nearest == nil || dist < nearestDist || (dist == nearestDist && ranksHigher(r, nearest)) {
			nearest = r
			nearestDist = dist
		}
	}

	if nearest != nil {
		distance := nearestDist
		eta := EstimateMinutes(nearestDist, nearest.VehicleType())
		return Assignment{Rider: nearest, DistanceKm: &distance, ETAMinutes: &eta}, nil
	}
	if len(withoutPlace) > 0 {
		return Assignment{Rider: bestByRating(withoutPlace)}, nil
	}
	return Assignment{}, ErrNoRiderAvailable
}

// EstimateMinutes converts a distance into whole minutes of travel, rounded up.
func EstimateMinutes(distanceKm float64, vehicle rider.VehicleType) int {
	return int(math.Ceil(distanceKm * minutesPerHour / vehicle.SpeedKmh()))
}

func bestByRating(riders []*rider.Rider) *rider.Rider {
	var best *rider.Rider
	for _, r := range riders {
		if best == nil || ranksHigher(r, best) {
			best = r
		}
	}
	return best
}

func ranksHigher(a, b *rider.Rider) bool {
	if a.Rating() != b.Rating() {
		return a.Rating() > b.Rating()
	}
	return a.TotalDeliveries() > b.TotalDeliveries()
}
