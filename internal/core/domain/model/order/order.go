package order

import (
	"errors"
	"time"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCartIsEmpty is returned when submitting an order without items.
	ErrCartIsEmpty = errors.New("order requires a non-empty cart")

	// ErrProfileIsIncomplete is returned when submitting an order before all
	// checkout fields were collected.
	ErrProfileIsIncomplete = errors.New("order requires a completed profile")
)

const (
	ratingMin = 1
	ratingMax = 5
)

// Order is the durable unit of work created at checkout submission. Items,
// total, and the profile snapshot are fixed at construction; everything that
// changes afterwards goes through the Status state machine's transitions.
type Order struct {
	id       kernel.UUID
	number   kernel.OrderNumber
	customer kernel.Phone

	items   []cart.Line
	total   kernel.Money
	profile Profile
	dropOff *kernel.Location

	status          Status
	vendor          *kernel.Phone
	deliveryPartner *kernel.Phone
	rating          *int

	createdAt time.Time

	isConstructed bool
}

// NewOrder creates an order in PendingVendorConfirmation from the customer's
// cart and completed profile. The cart is snapshotted: later cart changes in
// the session never affect the order.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	customer kernel.Phone,
	customerCart cart.Cart,
	profile Profile,
	dropOff *kernel.Location,
) (*Order, error) {
	if err := errors.Join(id.Validate(), number.Validate(), customer.Validate()); err != nil {
		return nil, err
	}
	if customerCart.IsEmpty() {
		return nil, ErrCartIsEmpty
	}
	if !profile.IsComplete() {
		return nil, ErrProfileIsIncomplete
	}
	if dropOff != nil {
		if err := dropOff.Validate(); err != nil {
			return nil, err
		}
	}

	items, total := customerCart.Summarize()

	return &Order{
		id:            id,
		number:        number,
		customer:      customer,
		items:         items,
		total:         total,
		profile:       profile,
		dropOff:       dropOff,
		status:        PendingVendorConfirmation,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// submission rules.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	customer kernel.Phone,
	items []cart.Line,
	total kernel.Money,
	profile Profile,
	dropOff *kernel.Location,
	status Status,
	vendor *kernel.Phone,
	deliveryPartner *kernel.Phone,
	rating *int,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), number.Validate(), customer.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		number:          number,
		customer:        customer,
		items:           items,
		total:           total,
		profile:         profile,
		dropOff:         dropOff,
		status:          status,
		vendor:          vendor,
		deliveryPartner: deliveryPartner,
		rating:          rating,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the order came from a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the aggregate identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the displayable order number.
func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

// Customer returns the ordering customer's phone.
func (o *Order) Customer() kernel.Phone {
	return o.customer
}

// Items returns a copy of the item snapshot taken at submission.
func (o *Order) Items() []cart.Line {
	items := make([]cart.Line, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total computed at submission.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Profile returns the fulfillment details snapshot.
func (o *Order) Profile() Profile {
	return o.profile
}

// DropOff returns the customer's shared location, nil when none was shared.
func (o *Order) DropOff() *kernel.Location {
	return o.dropOff
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Vendor returns the assigned vendor's phone, nil until assigned.
func (o *Order) Vendor() *kernel.Phone {
	return o.vendor
}

// DeliveryPartner returns the assigned partner's phone, nil until assigned.
func (o *Order) DeliveryPartner() *kernel.Phone {
	return o.deliveryPartner
}

// Rating returns the attached feedback rating, nil until completed.
func (o *Order) Rating() *int {
	return o.rating
}

// CreatedAt returns the submission time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignVendor records the vendor responsible for confirming the order.
// Only valid while the order is still pending confirmation.
func (o *Order) AssignVendor(vendor kernel.Phone) error {
	if err := vendor.Validate(); err != nil {
		return err
	}
	if o.status != PendingVendorConfirmation {
		return errs.NewValueIsInvalidError("vendor can only be assigned while pending confirmation")
	}

	o.vendor = &vendor
	return nil
}

// Accept applies the vendor's confirmation.
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Reject applies the vendor's rejection, a terminal transition.
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AssignDeliveryPartner records the partner collecting the order and moves the
// order to AwaitingPickup.
func (o *Order) AssignDeliveryPartner(partner kernel.Phone) error {
	if err := partner.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.AssignPartner()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryPartner = &partner
	return nil
}

// PickUp applies the delivery partner's pickup report.
func (o *Order) PickUp() error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// StartDelivery marks the order en route to the customer.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Deliver applies the delivery partner's delivery report.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AttachFeedback records the customer's rating and completes the order.
// The rating must be between 1 and 5 and the order must be Delivered.
func (o *Order) AttachFeedback(rating int) error {
	if rating < ratingMin || rating > ratingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, ratingMin, ratingMax)
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.rating = &rating
	return nil
}
