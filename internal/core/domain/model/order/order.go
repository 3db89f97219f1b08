package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/pkg/errs"
)

const (
	RatingMin = 1
	RatingMax = 5

	noteRejected  = "assignment rejected by rider"
	noteExpired   = "assignment expired"
	noteRiderDrop = "assignment cancelled by rider"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNotAssignedToRider is returned whenever a rider acts on an order it does not hold.
	ErrNotAssignedToRider = errs.NewPreconditionFailedError("order is not assigned to this rider")
	// ErrAssignmentExpired is returned when a rider accepts after the reservation deadline.
	ErrAssignmentExpired = errs.NewPreconditionFailedError("assignment has expired")
)

// Order is the aggregate root of the delivery workflow.
//
// Invariants kept by every method:
//   - riderID is set exactly when status.HoldsRider()
//   - assignmentExpiresAt is set only while status is Assigned and unaccepted
//   - the tracking journal only grows
type Order struct {
	id       ID
	customer Customer
	items    []Item
	total    float64

	deliveryFee      float64
	customerLocation *kernel.Location

	status              Status
	riderID             *kernel.UUID
	assignmentExpiresAt *time.Time
	assignmentAttempts  int
	assignedRiders      []kernel.UUID
	distanceKm          *float64
	etaMinutes          *int

	tracking        []TrackingEntry
	currentLocation string

	rating      *int
	deliveredAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	version     int

	events        []Event
	isConstructed bool
}

// NewOrder creates a pending order. The total is the sum of item subtotals.
//
// Parameters:
//   - location: the drop-off point, nil when the customer gave only an address
//   - deliveryFee: the precomputed fee, see services.DeliveryFee
func NewOrder(
	id ID,
	customer Customer,
	items []Item,
	location *kernel.Location,
	deliveryFee float64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setLocation(location),
		o.setDeliveryFee(deliveryFee),
	); err != nil {
		return nil, err
	}

	o.raise(EventCreated, "", Pending, now)
	return o, nil
}

// RestoreParams carries persisted state back into an Order.
type RestoreParams struct {
	ID                  ID
	Customer            Customer
	Items               []Item
	Total               float64
	DeliveryFee         float64
	CustomerLocation    *kernel.Location
	Status              Status
	RiderID             *kernel.UUID
	AssignmentExpiresAt *time.Time
	AssignmentAttempts  int
	AssignedRiders      []kernel.UUID
	DistanceKm          *float64
	ETAMinutes          *int
	Tracking            []TrackingEntry
	CurrentLocation     string
	Rating              *int
	DeliveredAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int
}

// RestoreOrder rebuilds an order from storage without raising events. Rows that
// break the rider/expiry invariants are rejected.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		total:               p.Total,
		deliveryFee:         p.DeliveryFee,
		riderID:             p.RiderID,
		assignmentExpiresAt: p.AssignmentExpiresAt,
		assignmentAttempts:  p.AssignmentAttempts,
		assignedRiders:      slices.Clone(p.AssignedRiders),
		distanceKm:          p.DistanceKm,
		etaMinutes:          p.ETAMinutes,
		tracking:            slices.Clone(p.Tracking),
		currentLocation:     p.CurrentLocation,
		rating:              p.Rating,
		deliveredAt:         p.DeliveredAt,
		createdAt:           p.CreatedAt,
		updatedAt:           p.UpdatedAt,
		version:             p.Version,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomer(p.Customer),
		o.setLocation(p.CustomerLocation),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.items = slices.Clone(p.Items)
	o.status = p.Status

	if p.Status.HoldsRider() != (p.RiderID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("rider id",
			fmt.Errorf("order %s in status %s has rider set: %t", p.ID, p.Status, p.RiderID != nil))
	}
	if p.AssignmentExpiresAt != nil && p.Status != Assigned {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignment expires at",
			fmt.Errorf("order %s in status %s has an assignment deadline", p.ID, p.Status))
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() ID                             { return o.id }
func (o *Order) Customer() Customer                 { return o.customer }
func (o *Order) Items() []Item                      { return slices.Clone(o.items) }
func (o *Order) Total() float64                     { return o.total }
func (o *Order) DeliveryFee() float64               { return o.deliveryFee }
func (o *Order) CustomerLocation() *kernel.Location { return o.customerLocation }
func (o *Order) Status() Status                     { return o.status }
func (o *Order) RiderID() *kernel.UUID              { return o.riderID }
func (o *Order) AssignmentExpiresAt() *time.Time    { return o.assignmentExpiresAt }
func (o *Order) AssignmentAttempts() int            { return o.assignmentAttempts }
func (o *Order) AssignedRiders() []kernel.UUID      { return slices.Clone(o.assignedRiders) }
func (o *Order) DistanceKm() *float64               { return o.distanceKm }
func (o *Order) ETAMinutes() *int                   { return o.etaMinutes }
func (o *Order) Rating() *int                       { return o.rating }
func (o *Order) DeliveredAt() *time.Time            { return o.deliveredAt }
func (o *Order) CreatedAt() time.Time               { return o.createdAt }
func (o *Order) UpdatedAt() time.Time               { return o.updatedAt }
func (o *Order) Version() int                       { return o.version }
func (o *Order) DomainEvents() []Event              { return slices.Clone(o.events) }
func (o *Order) ClearDomainEvents()                 { o.events = nil }

// IncrementVersion is called by the repository after a versioned write succeeded.
func (o *Order) IncrementVersion() {
	o.version++
}

// WasOfferedTo reports whether riderID appears in the assigned-riders audit list.
func (o *Order) WasOfferedTo(riderID kernel.UUID) bool {
	return slices.ContainsFunc(o.assignedRiders, riderID.IsEqual)
}

// Tracking returns a copy of the journal.
func (o *Order) Tracking() TrackingInfo {
	return TrackingInfo{
		Entries:         slices.Clone(o.tracking),
		CurrentLocation: o.currentLocation,
	}
}

// IsAwaitingConfirmation reports an assignment whose reservation is still open.
func (o *Order) IsAwaitingConfirmation() bool {
	return o.status == Assigned && o.assignmentExpiresAt != nil
}

// IsAssignmentExpired reports an unconfirmed assignment whose deadline is before now.
func (o *Order) IsAssignmentExpired(now time.Time) bool {
	return o.IsAwaitingConfirmation() && o.assignmentExpiresAt.Before(now)
}

// Assign reserves the order for riderID until expiresAt.
//
// The order must be pending with no rider. The rider is appended to the
// assigned-riders audit list and the attempt counter is incremented.
// distanceKm and etaMinutes are nil when no location data was available.
func (o *Order) Assign(
	riderID kernel.UUID,
	expiresAt time.Time,
	distanceKm *float64,
	etaMinutes *int,
	now time.Time,
) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.status != Pending || o.riderID != nil {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order %s is %s, only pending orders can be assigned", o.id, o.status))
	}
	if !expiresAt.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("assignment expires at",
			fmt.Errorf("%s is not after %s", expiresAt.Format(time.RFC3339), now.Format(time.RFC3339)))
	}

	from := o.status
	o.status = Assigned
	o.riderID = &riderID
	o.assignmentExpiresAt = &expiresAt
	o.assignmentAttempts++
	o.assignedRiders = append(o.assignedRiders, riderID)
	o.distanceKm = distanceKm
	o.etaMinutes = etaMinutes
	o.appendTracking(Assigned, now, "", "")

	o.raise(EventAssigned, from, Assigned, now)
	return nil
}

// Accept confirms the reservation held by riderID. Accepting twice is a no-op.
func (o *Order) Accept(riderID kernel.UUID, now time.Time) error {
	if !o.isHeldBy(riderID) {
		return ErrNotAssignedToRider
	}
	if o.status != Assigned {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order %s is %s, only assigned orders can be accepted", o.id, o.status))
	}
	if o.assignmentExpiresAt == nil {
		return nil
	}
	if o.assignmentExpiresAt.Before(now) {
		return ErrAssignmentExpired
	}

	o.assignmentExpiresAt = nil
	o.updatedAt = now
	o.raise(EventAssignmentAccepted, Assigned, Assigned, now)
	return nil
}

// Reject hands the order back to the pending pool. The caller re-runs assignment.
func (o *Order) Reject(riderID kernel.UUID, now time.Time) error {
	if !o.isHeldBy(riderID) {
		return ErrNotAssignedToRider
	}
	if o.status != Assigned {
		return &InvalidTransitionError{From: o.status, To: Pending}
	}

	o.release(now, noteRejected)
	o.raiseFor(EventAssignmentRejected, riderID, Assigned, Pending, now)
	return nil
}

// Expire releases an unconfirmed assignment whose deadline passed and returns
// the rider that held it.
func (o *Order) Expire(now time.Time) (kernel.UUID, error) {
	if !o.IsAssignmentExpired(now) {
		return kernel.UUID{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("order %s has no expired assignment", o.id))
	}

	riderID := *o.riderID
	o.release(now, noteExpired)
	o.raiseFor(EventAssignmentExpired, riderID, Assigned, Pending, now)
	return riderID, nil
}

// UpdateStatus advances the delivery on behalf of riderID and returns the
// previous status. Ownership is checked before the transition table, so a
// foreign rider always gets ErrNotAssignedToRider. Moving an unconfirmed
// assignment forward after its deadline returns ErrAssignmentExpired, as Accept
// does; handing it back to pending is still allowed. On error the order is unchanged.
//
// Parameters:
//   - location: free-form position reported by the rider, may be empty
//   - note: free-form remark, may be empty
func (o *Order) UpdateStatus(riderID kernel.UUID, to Status, location, note string, now time.Time) (Status, error) {
	if !o.isHeldBy(riderID) {
		return "", ErrNotAssignedToRider
	}
	if err := to.Validate(); err != nil {
		return "", err
	}
	from := o.status
	if _, err := from.TransitionTo(to); err != nil {
		return "", err
	}
	if to != Pending && o.IsAssignmentExpired(now) {
		return "", ErrAssignmentExpired
	}

	if to == Pending {
		if note == "" {
			note = noteRiderDrop
		}
		o.release(now, note)
		if location != "" {
			o.currentLocation = location
		}
		o.raiseFor(EventStatusChanged, riderID, from, to, now)
		return from, nil
	}

	o.status = to
	o.assignmentExpiresAt = nil
	if to == Delivered {
		o.deliveredAt = &now
	}
	o.appendTracking(to, now, location, note)

	o.raise(EventStatusChanged, from, to, now)
	return from, nil
}

// Cancel withdraws a pending order.
func (o *Order) Cancel(reason string, now time.Time) error {
	if o.status != Pending {
		return &InvalidTransitionError{From: o.status, To: Cancelled}
	}

	o.status = Cancelled
	o.appendTracking(Cancelled, now, "", reason)
	o.raise(EventCancelled, Pending, Cancelled, now)
	return nil
}

// Rate records the customer's score for a delivered order. An order is rated once.
func (o *Order) Rate(score int, now time.Time) error {
	if score < RatingMin || score > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", score, RatingMin, RatingMax)
	}
	if o.status != Delivered {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("order %s is %s, only delivered orders can be rated", o.id, o.status))
	}
	if o.rating != nil {
		return errs.NewPreconditionFailedError(fmt.Sprintf("order %s is already rated", o.id))
	}

	o.rating = &score
	o.updatedAt = now
	o.raise(EventRated, Delivered, Delivered, now)
	return nil
}

func (o *Order) isHeldBy(riderID kernel.UUID) bool {
	return o.riderID != nil && o.riderID.IsEqual(riderID)
}

func (o *Order) release(now time.Time, note string) {
	o.status = Pending
	o.riderID = nil
	o.assignmentExpiresAt = nil
	o.distanceKm = nil
	o.etaMinutes = nil
	o.appendTracking(Pending, now, "", note)
}

func (o *Order) appendTracking(status Status, now time.Time, location, note string) {
	o.tracking = append(o.tracking, TrackingEntry{
		Status:    status,
		Timestamp: now,
		Location:  location,
		Note:      note,
	})
	if location != "" {
		o.currentLocation = location
	}
	o.updatedAt = now
}

func (o *Order) raise(eventType EventType, from, to Status, now time.Time) {
	var riderID *kernel.UUID
	if o.riderID != nil {
		id := *o.riderID
		riderID = &id
	}
	o.events = append(o.events, Event{
		Type:       eventType,
		OrderID:    o.id,
		RiderID:    riderID,
		From:       from,
		To:         to,
		OccurredAt: now,
	})
}

func (o *Order) raiseFor(eventType EventType, riderID kernel.UUID, from, to Status, now time.Time) {
	o.events = append(o.events, Event{
		Type:       eventType,
		OrderID:    o.id,
		RiderID:    &riderID,
		From:       from,
		To:         to,
		OccurredAt: now,
	})
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	total := 0.0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.Subtotal()
	}
	o.items = slices.Clone(items)
	o.total = kernel.RoundMoney(total)
	return nil
}

func (o *Order) setLocation(location *kernel.Location) error {
	if location == nil {
		o.customerLocation = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	o.customerLocation = &loc
	return nil
}

func (o *Order) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%.2f is negative", fee))
	}
	o.deliveryFee = kernel.RoundMoney(fee)
	return nil
}
