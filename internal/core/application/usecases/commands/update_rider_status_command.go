package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/pkg/guard"
)

var ErrUpdateRiderStatusCommandIsNotConstructed = errors.New(
	"UpdateRiderStatusCommand must be created via NewUpdateRiderStatusCommand constructor",
)

// UpdateRiderStatusCommand is a rider toggling its own availability, optionally
// reporting where it is.
type UpdateRiderStatusCommand struct {
	riderID  kernel.UUID
	status   rider.Status
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateRiderStatusCommand(
	riderID kernel.UUID,
	status rider.Status,
	location *kernel.Location,
) (UpdateRiderStatusCommand, error) {
	cmd := UpdateRiderStatusCommand{
		riderID:  riderID,
		status:   status,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	var locationErr error
	if location != nil {
		locationErr = location.Validate()
	}
	if err := errors.Join(riderID.Validate(), status.Validate(), locationErr); err != nil {
		return UpdateRiderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateRiderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderStatusCommandIsNotConstructed)
}

func (c UpdateRiderStatusCommand) RiderID() kernel.UUID       { return c.riderID }
func (c UpdateRiderStatusCommand) Status() rider.Status       { return c.status }
func (c UpdateRiderStatusCommand) Location() *kernel.Location { return c.location }
