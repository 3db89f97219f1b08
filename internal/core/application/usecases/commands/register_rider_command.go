package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/rider"
	"gasfill/internal/pkg/guard"
)

var ErrRegisterRiderCommandIsNotConstructed = errors.New(
	"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
)

// RegisterRiderCommand signs up a rider. Field validation happens in
// rider.NewRider so the rules live in one place.
type RegisterRiderCommand struct {
	registration rider.Registration

	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(registration rider.Registration) RegisterRiderCommand {
	return RegisterRiderCommand{
		registration: registration,
		guard:        guard.NewConstructorGuard(),
	}
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) Registration() rider.Registration {
	return c.registration
}
