package commands

import (
	"errors"
	"time"

	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

var ErrExpireAssignmentsCommandIsNotConstructed = errors.New(
	"ExpireAssignmentsCommand must be created via NewExpireAssignmentsCommand constructor",
)

// ExpireAssignmentsCommand sweeps reservations whose deadline is before Now.
type ExpireAssignmentsCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewExpireAssignmentsCommand(now time.Time) (ExpireAssignmentsCommand, error) {
	if now.IsZero() {
		return ExpireAssignmentsCommand{}, errs.NewValueIsRequiredError("now")
	}
	return ExpireAssignmentsCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAssignmentsCommandIsNotConstructed)
}

func (c ExpireAssignmentsCommand) Now() time.Time {
	return c.now
}
