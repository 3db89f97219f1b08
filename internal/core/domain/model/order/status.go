package order

import (
	"errors"
	"fmt"
	"slices"

	"gasfill/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Transitions driven by the assigned rider:
//
//	pending ──> assigned ──> pickup|picked_up ──> in_transit ──> delivered
//	   ^           │  ^            │    ^              │
//	   └───────────┘  └────────────┘    └──────────────┘
//	(rider cancel)     (back-edges)
//
// picked_up is a legacy alias of pickup and follows the same edges.
// delivered and cancelled are terminal.
type Status string

const (
	Pending   Status = "pending"
	Assigned  Status = "assigned"
	Pickup    Status = "pickup"
	PickedUp  Status = "picked_up"
	InTransit Status = "in_transit"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

// ErrInvalidTransition matches every InvalidTransitionError via errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError names the disallowed (From, To) pair. It unwraps to both
// ErrInvalidTransition and errs.ErrPreconditionFailed.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() []error {
	return []error{ErrInvalidTransition, errs.ErrPreconditionFailed}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned},
		Assigned:  {Pickup, PickedUp, Pending},
		Pickup:    {InTransit, Assigned},
		PickedUp:  {InTransit, Assigned},
		InTransit: {Delivered, Pickup, PickedUp},
		Delivered: {},
		Cancelled: {},
	}
}

// ParseStatus converts a wire or database value into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// HoldsRider reports whether an order in this status must reference a rider.
func (s Status) HoldsRider() bool {
	return s != Pending && s != Cancelled
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions()[s])
}

func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions()[s], to)
}

// TransitionTo returns to when the edge (s, to) exists, or an *InvalidTransitionError.
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return "", &InvalidTransitionError{From: s, To: to}
	}
	return to, nil
}
