package ports

import (
	"context"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/vendor"
)

// Role classifies an inbound sender. Vendor and delivery partner phones are
// operator channels; everyone else is a customer. When one phone plays
// several roles, the operator role wins.
type Role int

const (
	// RoleCustomer is any sender not registered as an operator.
	RoleCustomer Role = iota

	// RoleVendor is a registered restaurant phone.
	RoleVendor

	// RoleDeliveryPartner is a registered delivery partner phone.
	RoleDeliveryPartner
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleCustomer:        "customer",
		RoleVendor:          "vendor",
		RoleDeliveryPartner: "delivery_partner",
	}
}

// String returns the role name for logs.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "customer"
}

// RoleResolver classifies sender phones.
type RoleResolver interface {
	RoleOf(phone kernel.Phone) Role
}

// VendorDirectory lists the registered vendors and delivery partners the
// order workflow can assign.
type VendorDirectory interface {
	// Vendors returns all registered vendors, active or not.
	Vendors(ctx context.Context) ([]*vendor.Vendor, error)

	// AvailablePartners returns the delivery partners currently accepting
	// tasks.
	AvailablePartners(ctx context.Context) ([]*vendor.DeliveryPartner, error)
}
