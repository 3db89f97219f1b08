package commands

import (
	"errors"
	"fmt"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

var ErrModerateRiderCommandIsNotConstructed = errors.New(
	"ModerateRiderCommand must be created via NewModerateRiderCommand constructor",
)

// ModerationAction is an admin decision about a rider.
type ModerationAction string

const (
	ActionVerify    ModerationAction = "verify"
	ActionSuspend   ModerationAction = "suspend"
	ActionReinstate ModerationAction = "reinstate"
)

func (a ModerationAction) Validate() error {
	switch a {
	case ActionVerify, ActionSuspend, ActionReinstate:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a moderation action", string(a)))
	}
}

type ModerateRiderCommand struct {
	riderID kernel.UUID
	action  ModerationAction

	guard guard.ConstructorGuard
}

func NewModerateRiderCommand(riderID kernel.UUID, action ModerationAction) (ModerateRiderCommand, error) {
	if err := errors.Join(riderID.Validate(), action.Validate()); err != nil {
		return ModerateRiderCommand{}, err
	}
	return ModerateRiderCommand{
		riderID: riderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ModerateRiderCommand) Validate() error {
	return c.guard.Validate(ErrModerateRiderCommandIsNotConstructed)
}

func (c ModerateRiderCommand) RiderID() kernel.UUID     { return c.riderID }
func (c ModerateRiderCommand) Action() ModerationAction { return c.action }
