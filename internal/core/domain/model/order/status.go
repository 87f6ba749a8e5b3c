package order

import (
	"fmt"

	"chatorder/internal/pkg/errs"
)

// Status is the single source of truth for where an order stands. It
// implements a forward-only state machine: every transition method validates
// the source state and returns the target state, so no path can move an order
// backwards through the lifecycle.
type Status int

const (
	// Unknown represents an invalid or uninitialized status.
	Unknown Status = iota

	// PendingVendorConfirmation is the initial status after submission,
	// while the assigned vendor decides to accept or reject.
	PendingVendorConfirmation

	// VendorAccepted means the vendor confirmed the order and preparation
	// has started.
	VendorAccepted

	// VendorRejected is the terminal failure branch: the vendor declined.
	VendorRejected

	// AwaitingPickup means a delivery partner has been assigned and the
	// order is waiting to be collected.
	AwaitingPickup

	// Processing means the delivery partner has collected the order.
	Processing

	// OutForDelivery means the order is en route to the customer.
	OutForDelivery

	// Delivered means the order reached the customer; a rating is pending.
	Delivered

	// Completed is the terminal success state, entered when feedback is
	// attached.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                   "Unknown",
		PendingVendorConfirmation: "PendingVendorConfirmation",
		VendorAccepted:            "VendorAccepted",
		VendorRejected:            "VendorRejected",
		AwaitingPickup:            "AwaitingPickup",
		Processing:                "Processing",
		OutForDelivery:            "OutForDelivery",
		Delivered:                 "Delivered",
		Completed:                 "Completed",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return s.invalid("is not a valid status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return s.invalid("is not a valid status")
	}
	return nil
}

// String returns the status name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == VendorRejected || s == Completed
}

// Accept transitions PendingVendorConfirmation to VendorAccepted.
func (s Status) Accept() (Status, error) {
	if s != PendingVendorConfirmation {
		return 0, s.invalid("is not a valid status to accept")
	}
	return VendorAccepted, nil
}

// Reject transitions PendingVendorConfirmation to the terminal VendorRejected.
func (s Status) Reject() (Status, error) {
	if s != PendingVendorConfirmation {
		return 0, s.invalid("is not a valid status to reject")
	}
	return VendorRejected, nil
}

// AssignPartner transitions VendorAccepted to AwaitingPickup when a delivery
// partner is matched to the order.
func (s Status) AssignPartner() (Status, error) {
	if s != VendorAccepted {
		return 0, s.invalid("is not a valid status to assign a delivery partner")
	}
	return AwaitingPickup, nil
}

// PickUp transitions to Processing. Pickup is accepted from VendorAccepted as
// well as AwaitingPickup: a partner may report collection before the
// assignment bookkeeping caught up, and both edges move strictly forward.
func (s Status) PickUp() (Status, error) {
	if s != VendorAccepted && s != AwaitingPickup {
		return 0, s.invalid("is not a valid status to pick up")
	}
	return Processing, nil
}

// StartDelivery transitions Processing to OutForDelivery.
func (s Status) StartDelivery() (Status, error) {
	if s != Processing {
		return 0, s.invalid("is not a valid status to go out for delivery")
	}
	return OutForDelivery, nil
}

// Deliver transitions OutForDelivery to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery {
		return 0, s.invalid("is not a valid status to deliver")
	}
	return Delivered, nil
}

// Complete transitions Delivered to the terminal Completed when feedback is
// attached.
func (s Status) Complete() (Status, error) {
	if s != Delivered {
		return 0, s.invalid("is not a valid status to complete")
	}
	return Completed, nil
}

func (s Status) invalid(reason string) error {
	return errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%s %s", s.String(), reason))
}
