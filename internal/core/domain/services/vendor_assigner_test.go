package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/vendor"
	"chatorder/internal/core/domain/services"
)

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func mustVendor(t *testing.T, name, phone string, loc kernel.Location, active bool) *vendor.Vendor {
	t.Helper()
	p, err := kernel.NewPhone(phone)
	require.NoError(t, err)
	v, err := vendor.NewVendor(name, p, loc, active)
	require.NoError(t, err)
	return v
}

func Test_VendorAssigner_Assign(t *testing.T) {
	assigner := services.NewVendorAssigner()

	dropOff := mustLocation(t, 13.0827, 80.2707)
	near := mustVendor(t, "Chennai Corner", "919000000001", mustLocation(t, 13.0830, 80.2710), true)
	farther := mustVendor(t, "Marina Grill", "919000000002", mustLocation(t, 13.0930, 80.2800), true)
	outOfRange := mustVendor(t, "Bangalore Bites", "919000000003", mustLocation(t, 12.9716, 77.5946), true)
	inactive := mustVendor(t, "Closed Kitchen", "919000000004", mustLocation(t, 13.0828, 80.2708), false)

	t.Run("should pick the nearest active vendor within range", func(t *testing.T) {
		picked, err := assigner.Assign(&dropOff, []*vendor.Vendor{outOfRange, farther, near})

		require.NoError(t, err)
		assert.Equal(t, "Chennai Corner", picked.Name())
	})

	t.Run("should skip inactive vendors even when they are nearest", func(t *testing.T) {
		picked, err := assigner.Assign(&dropOff, []*vendor.Vendor{inactive, farther})

		require.NoError(t, err)
		assert.Equal(t, "Marina Grill", picked.Name())
	})

	t.Run("should fail when every vendor is out of range", func(t *testing.T) {
		_, err := assigner.Assign(&dropOff, []*vendor.Vendor{outOfRange})

		assert.ErrorIs(t, err, services.ErrVendorNotFound)
	})

	t.Run("should fail when every vendor is inactive", func(t *testing.T) {
		_, err := assigner.Assign(&dropOff, []*vendor.Vendor{inactive})

		assert.ErrorIs(t, err, services.ErrVendorNotFound)
	})

	t.Run("should fall back to the first active vendor without a drop-off", func(t *testing.T) {
		picked, err := assigner.Assign(nil, []*vendor.Vendor{inactive, outOfRange, near})

		require.NoError(t, err)
		assert.Equal(t, "Bangalore Bites", picked.Name())
	})

	t.Run("should fail without a drop-off when no vendor is active", func(t *testing.T) {
		_, err := assigner.Assign(nil, []*vendor.Vendor{inactive})

		assert.ErrorIs(t, err, services.ErrVendorNotFound)
	})
}
