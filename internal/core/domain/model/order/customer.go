package order

import (
	"errors"
	"fmt"
	"strings"

	"gasfill/internal/core/domain/model/kernel"
	"gasfill/internal/pkg/errs"
	"gasfill/internal/pkg/guard"
)

var (
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
	ErrItemIsNotConstructed     = errors.New("Item must be created via NewItem constructor")
)

// Customer holds the contact and drop-off details captured with an order.
type Customer struct {
	name    string
	phone   string
	email   string
	address string
	guard   guard.ConstructorGuard
}

// NewCustomer requires name, phone and address; email is optional.
func NewCustomer(name, phone, email, address string) (Customer, error) {
	c := Customer{
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		email:   strings.TrimSpace(email),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	var problems []error
	if c.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer name"))
	}
	if c.phone == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer phone"))
	}
	if c.address == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer address"))
	}
	if c.email != "" && !strings.Contains(c.email, "@") {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("customer email",
			fmt.Errorf("%q has no @", c.email)))
	}
	if err := errors.Join(problems...); err != nil {
		return Customer{}, err
	}

	return c, nil
}

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c Customer) Name() string    { return c.name }
func (c Customer) Phone() string   { return c.phone }
func (c Customer) Email() string   { return c.email }
func (c Customer) Address() string { return c.address }

// Item is one order line, e.g. a 12kg cylinder refill.
type Item struct {
	name      string
	quantity  int
	unitPrice float64
	guard     guard.ConstructorGuard
}

func NewItem(name string, quantity int, unitPrice float64) (Item, error) {
	item := Item{
		name:      strings.TrimSpace(name),
		quantity:  quantity,
		unitPrice: kernel.RoundMoney(unitPrice),
		guard:     guard.NewConstructorGuard(),
	}

	var problems []error
	if item.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item name"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("item price",
			fmt.Errorf("%.2f is negative", unitPrice)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Name() string       { return i.name }
func (i Item) Quantity() int      { return i.quantity }
func (i Item) UnitPrice() float64 { return i.unitPrice }

func (i Item) Subtotal() float64 {
	return kernel.RoundMoney(float64(i.quantity) * i.unitPrice)
}
