package commands

import (
	"errors"
	"strings"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand advances an order through the delivery journal
// on behalf of the rider holding it.
type UpdateDeliveryStatusCommand struct {
	orderID  order.ID
	riderID  kernel.UUID
	status   order.Status
	location string
	note     string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand validates identifiers and the target status.
// Whether the transition is allowed is decided against the stored order.
func NewUpdateDeliveryStatusCommand(
	orderID order.ID,
	riderID kernel.UUID,
	status order.Status,
	location, note string,
) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), riderID.Validate(), status.Validate()); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	return UpdateDeliveryStatusCommand{
		orderID:  orderID,
		riderID:  riderID,
		status:   status,
		location: strings.TrimSpace(location),
		note:     strings.TrimSpace(note),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) OrderID() order.ID    { return c.orderID }
func (c UpdateDeliveryStatusCommand) RiderID() kernel.UUID { return c.riderID }
func (c UpdateDeliveryStatusCommand) Status() order.Status { return c.status }
func (c UpdateDeliveryStatusCommand) Location() string     { return c.location }
func (c UpdateDeliveryStatusCommand) Note() string         { return c.note }
