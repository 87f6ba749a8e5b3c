package commands

import (
	"errors"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
)

// SubmitOrderCommand represents a confirmed checkout: the customer accepted
// the summary and the session's cart and profile become an order.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customer kernel.Phone
	cart     cart.Cart
	profile  order.Profile
	dropOff  *kernel.Location

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a submission command from the session's
// collected state. The cart must be non-empty and the profile complete;
// dropOff is optional.
func NewSubmitOrderCommand(
	customer kernel.Phone,
	customerCart cart.Cart,
	profile order.Profile,
	dropOff *kernel.Location,
) (SubmitOrderCommand, error) {
	if err := customer.Validate(); err != nil {
		return SubmitOrderCommand{}, err
	}
	if customerCart.IsEmpty() {
		return SubmitOrderCommand{}, order.ErrCartIsEmpty
	}
	if !profile.IsComplete() {
		return SubmitOrderCommand{}, order.ErrProfileIsIncomplete
	}
	if dropOff != nil {
		if err := dropOff.Validate(); err != nil {
			return SubmitOrderCommand{}, err
		}
	}

	return SubmitOrderCommand{
		customer: customer,
		cart:     customerCart,
		profile:  profile,
		dropOff:  dropOff,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// Customer returns the ordering customer's phone.
func (c SubmitOrderCommand) Customer() kernel.Phone {
	return c.customer
}

// Cart returns the cart to snapshot into the order.
func (c SubmitOrderCommand) Cart() cart.Cart {
	return c.cart
}

// Profile returns the collected fulfillment details.
func (c SubmitOrderCommand) Profile() order.Profile {
	return c.profile
}

// DropOff returns the shared location, nil when none was shared.
func (c SubmitOrderCommand) DropOff() *kernel.Location {
	return c.dropOff
}
