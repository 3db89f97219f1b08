package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

const (
	DefaultRating = 5.0
	ratingMin     = 1
	ratingMax     = 5
)

var (
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired       = errs.NewValueIsRequiredError("phone")
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

	// ErrRiderSuspended is returned for self-service changes by a suspended rider.
	ErrRiderSuspended = errs.NewPreconditionFailedError("rider is suspended")

	// ErrRiderHasActiveOrder is returned when a busy rider tries to leave Busy
	// on its own. Release, CompleteDelivery and Suspend are the only ways out.
	ErrRiderHasActiveOrder = errs.NewPreconditionFailedError("rider has an active order")
)

// Registration holds the details a rider submits when signing up.
type Registration struct {
	Name          string
	Phone         string
	Email         string
	VehicleType   VehicleType
	VehicleNumber string
	LicenseNumber string
	AreaCoverage  string
}

// Rider is the aggregate for a delivery rider. A rider holds at most one active
// order, during which its status is Busy.
type Rider struct {
	id            kernel.UUID
	name          string
	phone         string
	email         string
	vehicleType   VehicleType
	vehicleNumber string
	licenseNumber string
	areaCoverage  string

	status          Status
	location        *kernel.Location
	rating          float64
	ratingCount     int
	totalDeliveries int
	isActive        bool
	isVerified      bool
	isSuspended     bool

	createdAt time.Time
	updatedAt time.Time
	version   int

	guard guard.ConstructorGuard
}

// NewRider registers a rider. New riders start offline, active and unverified.
func NewRider(id kernel.UUID, reg Registration, now time.Time) (*Rider, error) {
	r := &Rider{
		vehicleNumber: strings.TrimSpace(reg.VehicleNumber),
		licenseNumber: strings.TrimSpace(reg.LicenseNumber),
		areaCoverage:  strings.TrimSpace(reg.AreaCoverage),
		email:         strings.TrimSpace(reg.Email),
		status:        Offline,
		rating:        DefaultRating,
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(reg.Name),
		r.setPhone(reg.Phone),
		r.setVehicleType(reg.VehicleType),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreParams carries persisted rider state.
type RestoreParams struct {
	ID              kernel.UUID
	Registration    Registration
	Status          Status
	Location        *kernel.Location
	Rating          float64
	RatingCount     int
	TotalDeliveries int
	IsActive        bool
	IsVerified      bool
	IsSuspended     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

func RestoreRider(p RestoreParams) (*Rider, error) {
	r := &Rider{
		vehicleNumber:   p.Registration.VehicleNumber,
		licenseNumber:   p.Registration.LicenseNumber,
		areaCoverage:    p.Registration.AreaCoverage,
		email:           p.Registration.Email,
		location:        p.Location,
		rating:          p.Rating,
		ratingCount:     p.RatingCount,
		totalDeliveries: p.TotalDeliveries,
		isActive:        p.IsActive,
		isVerified:      p.IsVerified,
		isSuspended:     p.IsSuspended,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
		version:         p.Version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(p.ID),
		r.setName(p.Registration.Name),
		r.setPhone(p.Registration.Phone),
		r.setVehicleType(p.Registration.VehicleType),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = p.Status

	return r, nil
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID            { return r.id }
func (r *Rider) Name() string               { return r.name }
func (r *Rider) Phone() string              { return r.phone }
func (r *Rider) Email() string              { return r.email }
func (r *Rider) VehicleType() VehicleType   { return r.vehicleType }
func (r *Rider) VehicleNumber() string      { return r.vehicleNumber }
func (r *Rider) LicenseNumber() string      { return r.licenseNumber }
func (r *Rider) AreaCoverage() string       { return r.areaCoverage }
func (r *Rider) Status() Status             { return r.status }
func (r *Rider) Location() *kernel.Location { return r.location }
func (r *Rider) Rating() float64            { return r.rating }
func (r *Rider) RatingCount() int           { return r.ratingCount }
func (r *Rider) TotalDeliveries() int       { return r.totalDeliveries }
func (r *Rider) IsActive() bool             { return r.isActive }
func (r *Rider) IsVerified() bool           { return r.isVerified }
func (r *Rider) IsSuspended() bool          { return r.isSuspended }
func (r *Rider) CreatedAt() time.Time       { return r.createdAt }
func (r *Rider) UpdatedAt() time.Time       { return r.updatedAt }
func (r *Rider) Version() int               { return r.version }

// IncrementVersion is called by the repository after a versioned write succeeded.
func (r *Rider) IncrementVersion() {
	r.version++
}

// IsEligible reports whether the rider can be offered a new order.
func (r *Rider) IsEligible() bool {
	return r.status == Available && r.isActive && r.isVerified && !r.isSuspended
}

// Reserve marks an eligible rider busy with a newly assigned order.
func (r *Rider) Reserve(now time.Time) error {
	if !r.IsEligible() {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("rider %s is not eligible for assignment (status %s)", r.id, r.status))
	}
	r.status = Busy
	r.updatedAt = now
	return nil
}

// Release frees a busy rider after its order was rejected, expired or handed
// back. It reports whether the status changed.
func (r *Rider) Release(now time.Time) bool {
	if r.status != Busy {
		return false
	}
	r.status = Available
	r.updatedAt = now
	return true
}

// CompleteDelivery counts a delivered order and frees the rider.
func (r *Rider) CompleteDelivery(now time.Time) {
	r.totalDeliveries++
	r.Release(now)
	r.updatedAt = now
}

// ChangeStatus applies a rider's own availability toggle. Busy is entered only
// through Reserve; a busy rider may repeat Busy (to report a location) but
// cannot leave it.
func (r *Rider) ChangeStatus(to Status, now time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if r.isSuspended {
		return ErrRiderSuspended
	}
	if r.status == Busy {
		if to != Busy {
			return ErrRiderHasActiveOrder
		}
		r.updatedAt = now
		return nil
	}
	if !to.IsSelfService() {
		return errs.NewPreconditionFailedError(fmt.Sprintf("rider cannot set status %s", to))
	}
	if to == Available && !r.isActive {
		return errs.NewPreconditionFailedError("inactive rider cannot go available")
	}
	r.status = to
	r.updatedAt = now
	return nil
}

func (r *Rider) UpdateLocation(location kernel.Location, now time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = &location
	r.updatedAt = now
	return nil
}

// AddRating folds a 1..5 customer score into the running mean.
func (r *Rider) AddRating(score int, now time.Time) error {
	if score < ratingMin || score > ratingMax {
		return errs.NewValueIsOutOfRangeError("rating", score, ratingMin, ratingMax)
	}
	total := r.rating*float64(r.ratingCount) + float64(score)
	r.ratingCount++
	r.rating = kernel.RoundMoney(total / float64(r.ratingCount))
	r.updatedAt = now
	return nil
}

func (r *Rider) Verify(now time.Time) {
	r.isVerified = true
	r.updatedAt = now
}

// Suspend blocks the rider from assignment and self-service status changes.
func (r *Rider) Suspend(now time.Time) {
	r.isSuspended = true
	r.status = Suspended
	r.updatedAt = now
}

// Reinstate lifts a suspension; the rider comes back offline.
func (r *Rider) Reinstate(now time.Time) error {
	if !r.isSuspended {
		return errs.NewPreconditionFailedError(fmt.Sprintf("rider %s is not suspended", r.id))
	}
	r.isSuspended = false
	r.status = Offline
	r.updatedAt = now
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	r.phone = phone
	return nil
}

func (r *Rider) setVehicleType(v VehicleType) error {
	parsed, err := ParseVehicleType(string(v))
	if err != nil {
		return err
	}
	r.vehicleType = parsed
	return nil
}
