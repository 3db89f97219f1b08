package commands

import (
	"errors"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/core/domain/model/order"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CreateOrderCommand places a new cylinder order.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ama", "+233200000001", "", "Osu")
//	item, _ := order.NewItem("14.5kg refill", 1, 180)
//	cmd, err := NewCreateOrderCommand(customer, []order.Item{item}, nil)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer order.Customer
	items    []order.Item
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand requires a valid customer and at least one item.
// location may be nil when the customer gave an address only.
func NewCreateOrderCommand(
	customer order.Customer,
	items []order.Item,
	location *kernel.Location,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setLocation(location),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Customer() order.Customer   { return c.customer }
func (c CreateOrderCommand) Items() []order.Item        { return c.items }
func (c CreateOrderCommand) Location() *kernel.Location { return c.location }

// Total is the sum of item subtotals, the base for the delivery fee cap.
func (c CreateOrderCommand) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return kernel.RoundMoney(total)
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
