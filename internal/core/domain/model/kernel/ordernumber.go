package kernel

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"chatorder/internal/pkg/errs"
	"chatorder/internal/pkg/guard"
)

// orderNumberPrefix is the externally visible prefix of every order number.
const orderNumberPrefix = "ORD"

// ErrOrderNumberIsNotConstructed is returned when a zero-value OrderNumber is used.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NextOrderNumber or OrderNumberFromString")

// OrderNumber is the globally unique, displayable identifier of an order,
// derived from the creation time ("ORD-1717500000000"). Generation is
// process-monotonic: two numbers issued in the same millisecond still differ
// and sort in issue order.
//
// The zero value is invalid; use NextOrderNumber or OrderNumberFromString.
type OrderNumber struct { //nolint:recvcheck //using for validation
	value string

	guard guard.ConstructorGuard
}

var orderNumberClock struct {
	mu   sync.Mutex
	last int64
}

// NextOrderNumber issues a fresh order number from the current time.
func NextOrderNumber() OrderNumber {
	orderNumberClock.mu.Lock()
	now := time.Now().UnixMilli()
	if now <= orderNumberClock.last {
		now = orderNumberClock.last + 1
	}
	orderNumberClock.last = now
	orderNumberClock.mu.Unlock()

	return OrderNumber{
		value: fmt.Sprintf("%s-%d", orderNumberPrefix, now),
		guard: guard.NewConstructorGuard(),
	}
}

// OrderNumberFromString parses an order number from operator input or
// persistence. Matching is case-insensitive; the canonical upper-case form is
// stored. The value must start with the ORD prefix and contain at least one
// more character from [0-9A-Z-].
func OrderNumberFromString(raw string) (OrderNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}

	if !strings.HasPrefix(normalized, orderNumberPrefix) || len(normalized) <= len(orderNumberPrefix) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not look like an order number", raw))
	}

	for _, r := range normalized[len(orderNumberPrefix):] {
		validDigit := r >= '0' && r <= '9'
		validLetter := r >= 'A' && r <= 'Z'
		if !validDigit && !validLetter && r != '-' {
			return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause("order number",
				fmt.Errorf("%q contains an invalid character", raw))
		}
	}

	return OrderNumber{
		value: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrOrderNumberIsNotConstructed for the zero value.
func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}

// String returns the canonical order number, e.g. "ORD-1717500000000".
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual reports whether both numbers identify the same order.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}
