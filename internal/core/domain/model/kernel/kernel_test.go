package kernel_test

import (
	"strings"
	"testing"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("should create distinct valid UUIDs", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
	})

	t.Run("should round-trip through string", func(t *testing.T) {
		id := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(id.String())
		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("should reject malformed strings", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var id kernel.UUID
		require.Error(t, id.Validate())
	})
}

func TestPhone(t *testing.T) {
	t.Run("should normalize spaces, dashes, and leading plus", func(t *testing.T) {
		phone, err := kernel.NewPhone("+91 98765-43210")

		require.NoError(t, err)
		assert.Equal(t, "919876543210", phone.String())
		require.NoError(t, phone.Validate())
	})

	t.Run("should reject non-digit characters", func(t *testing.T) {
		_, err := kernel.NewPhone("98765abcde")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := kernel.NewPhone("   ")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject too short and too long numbers", func(t *testing.T) {
		_, err := kernel.NewPhone("123456")
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewPhone("1234567890123456")
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should compare by normalized value", func(t *testing.T) {
		a, err := kernel.NewPhone("+91 9876543210")
		require.NoError(t, err)
		b, err := kernel.NewPhone("919876543210")
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var phone kernel.Phone
		assert.ErrorIs(t, phone.Validate(), kernel.ErrPhoneIsNotConstructed)
	})
}

func TestMoney(t *testing.T) {
	t.Run("should create from minor units", func(t *testing.T) {
		m, err := kernel.NewMoney(2000)

		require.NoError(t, err)
		assert.Equal(t, int64(2000), m.Amount())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should convert from major units", func(t *testing.T) {
		m, err := kernel.MoneyFromMajor(20)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), m.Amount())

		m, err = kernel.MoneyFromMajor(19.99)
		require.NoError(t, err)
		assert.Equal(t, int64(1999), m.Amount())
	})

	t.Run("should add and multiply exactly", func(t *testing.T) {
		shirt, err := kernel.MoneyFromMajor(20)
		require.NoError(t, err)
		saree, err := kernel.MoneyFromMajor(100)
		require.NoError(t, err)

		total := shirt.MultiplyQty(2).Add(saree.MultiplyQty(1))
		assert.Equal(t, int64(14000), total.Amount())
		assert.Equal(t, "₹140.00", total.String())
	})

	t.Run("zero value should be a valid zero amount", func(t *testing.T) {
		var m kernel.Money
		assert.True(t, m.IsZero())
		assert.Equal(t, "₹0.00", m.String())
	})
}

func TestOrderNumber(t *testing.T) {
	t.Run("should issue monotonically distinguishable numbers", func(t *testing.T) {
		first := kernel.NextOrderNumber()
		second := kernel.NextOrderNumber()

		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
		assert.Less(t, first.String(), second.String())
		assert.True(t, strings.HasPrefix(first.String(), "ORD-"))
	})

	t.Run("should parse operator-supplied numbers case-insensitively", func(t *testing.T) {
		number, err := kernel.OrderNumberFromString("ord-1717500000000")

		require.NoError(t, err)
		assert.Equal(t, "ORD-1717500000000", number.String())
	})

	t.Run("should accept compact forms like ORD123", func(t *testing.T) {
		number, err := kernel.OrderNumberFromString("ORD123")

		require.NoError(t, err)
		assert.Equal(t, "ORD123", number.String())
	})

	t.Run("should reject values without the prefix", func(t *testing.T) {
		_, err := kernel.OrderNumberFromString("1717500000000")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the bare prefix and garbage characters", func(t *testing.T) {
		_, err := kernel.OrderNumberFromString("ORD")
		require.Error(t, err)

		_, err = kernel.OrderNumberFromString("ORD 12!")
		require.Error(t, err)
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var number kernel.OrderNumber
		assert.ErrorIs(t, number.Validate(), kernel.ErrOrderNumberIsNotConstructed)
	})
}

func TestLocation(t *testing.T) {
	t.Run("should create a valid location", func(t *testing.T) {
		loc, err := kernel.NewLocation(13.093, 80.113)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, 13.093, loc.Lat(), 1e-9)
		assert.InDelta(t, 80.113, loc.Lon(), 1e-9)
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		_, err := kernel.NewLocation(91, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewLocation(0, -181)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should measure zero distance to itself", func(t *testing.T) {
		loc, err := kernel.NewLocation(13.093, 80.113)
		require.NoError(t, err)

		d, err := loc.DistanceKm(loc)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("should measure a known distance", func(t *testing.T) {
		chennai, err := kernel.NewLocation(13.0827, 80.2707)
		require.NoError(t, err)
		bangalore, err := kernel.NewLocation(12.9716, 77.5946)
		require.NoError(t, err)

		d, err := chennai.DistanceKm(bangalore)
		require.NoError(t, err)
		assert.InDelta(t, 290, d, 10)
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var loc kernel.Location
		assert.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)

		valid, err := kernel.NewLocation(0, 0)
		require.NoError(t, err)
		_, err = valid.DistanceKm(loc)
		require.Error(t, err)
	})
}
