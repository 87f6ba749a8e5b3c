// Package directory resolves sender roles and lists the configured
// fulfillment operators. Vendors and delivery partners are registered at
// startup from configuration; the roster does not change while the service
// runs.
package directory

import (
	"context"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/vendor"
	"chatorder/internal/core/ports"
)

// StaticDirectory implements ports.RoleResolver and ports.VendorDirectory
// over an in-memory roster.
type StaticDirectory struct {
	vendors  []*vendor.Vendor
	partners []*vendor.DeliveryPartner
	roles    map[string]operatorRole
}

type operatorRole int

const (
	roleVendor operatorRole = iota + 1
	rolePartner
)

// NewStaticDirectory builds the roster. The same phone never holds two
// roles; the last registration wins.
func NewStaticDirectory(vendors []*vendor.Vendor, partners []*vendor.DeliveryPartner) (*StaticDirectory, error) {
	roles := make(map[string]operatorRole, len(vendors)+len(partners))

	for _, v := range vendors {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		roles[v.Phone().String()] = roleVendor
	}
	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		roles[p.Phone().String()] = rolePartner
	}

	return &StaticDirectory{
		vendors:  vendors,
		partners: partners,
		roles:    roles,
	}, nil
}

// RoleOf classifies a sender phone.
func (d *StaticDirectory) RoleOf(phone kernel.Phone) ports.Role {
	switch d.roles[phone.String()] {
	case roleVendor:
		return ports.RoleVendor
	case rolePartner:
		return ports.RoleDeliveryPartner
	default:
		return ports.RoleCustomer
	}
}

// Vendors returns all registered vendors.
func (d *StaticDirectory) Vendors(_ context.Context) ([]*vendor.Vendor, error) {
	return d.vendors, nil
}

// AvailablePartners returns the delivery partners that can take a new task.
func (d *StaticDirectory) AvailablePartners(_ context.Context) ([]*vendor.DeliveryPartner, error) {
	available := make([]*vendor.DeliveryPartner, 0, len(d.partners))
	for _, p := range d.partners {
		if p.IsAvailable() {
			available = append(available, p)
		}
	}
	return available, nil
}
