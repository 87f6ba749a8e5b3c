package services

import (
	"errors"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/vendor"
)

// ErrVendorNotFound is returned when no vendor can serve the order: none are
// configured active, or none are within delivery range of the customer.
var ErrVendorNotFound = errors.New("vendor not found")

// MaxVendorDistanceKm is the delivery radius for location-based matching.
const MaxVendorDistanceKm = 5.0

// VendorAssigner picks the vendor for a newly submitted order.
//
// Policy: when the customer shared a location, the nearest active vendor
// within MaxVendorDistanceKm wins; without a location, the first active
// configured vendor is used.
type VendorAssigner struct{}

// NewVendorAssigner creates a VendorAssigner.
func NewVendorAssigner() VendorAssigner {
	return VendorAssigner{}
}

// Assign selects a vendor for the given drop-off location (nil when the
// customer shared none). Returns ErrVendorNotFound when no active vendor
// qualifies.
func (a VendorAssigner) Assign(dropOff *kernel.Location, vendors []*vendor.Vendor) (*vendor.Vendor, error) {
	if dropOff == nil {
		return a.firstActive(vendors)
	}
	return a.nearestActive(*dropOff, vendors)
}

func (a VendorAssigner) firstActive(vendors []*vendor.Vendor) (*vendor.Vendor, error) {
	for _, v := range vendors {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if v.IsActive() {
			return v, nil
		}
	}
	return nil, ErrVendorNotFound
}

func (a VendorAssigner) nearestActive(dropOff kernel.Location, vendors []*vendor.Vendor) (*vendor.Vendor, error) {
	var (
		best     *vendor.Vendor
		bestDist float64
	)

	for _, v := range vendors {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if !v.IsActive() {
			continue
		}

		dist, err := v.Location().DistanceKm(dropOff)
		if err != nil {
			return nil, err
		}
		if dist > MaxVendorDistanceKm {
			continue
		}

		if best == nil || dist < bestDist {
			bestDist = dist
			best = v
		}
	}

	if best == nil {
		return nil, ErrVendorNotFound
	}
	return best, nil
}
