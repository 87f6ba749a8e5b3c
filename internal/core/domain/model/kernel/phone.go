package kernel

import (
	"fmt"
	"strings"

	"chatorder/internal/pkg/errs"
	"chatorder/internal/pkg/guard"
)

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15
)

// ErrPhoneIsNotConstructed is returned when a zero-value Phone is used.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

// Phone is the messaging identifier of an actor (customer, vendor, delivery
// partner, or admin). It is stored in normalized form: digits only, without a
// leading plus sign, the way the messaging gateway reports senders.
//
// The zero value is invalid; use NewPhone.
type Phone struct { //nolint:recvcheck //using for validation
	value string

	guard guard.ConstructorGuard
}

// NewPhone normalizes and validates a phone identifier. Spaces, dashes, and a
// leading plus sign are stripped; the remaining string must be 7 to 15 digits.
func NewPhone(raw string) (Phone, error) {
	phone := Phone{
		guard: guard.NewConstructorGuard(),
	}

	if err := phone.setValue(raw); err != nil {
		return Phone{}, err
	}

	return phone, nil
}

// Validate returns ErrPhoneIsNotConstructed for the zero value.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

// String returns the normalized digit string.
func (p Phone) String() string {
	return p.value
}

// IsEqual reports whether both phones hold the same normalized value.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}

func (p *Phone) setValue(raw string) error {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	normalized = strings.TrimPrefix(normalized, "+")

	if normalized == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	for _, r := range normalized {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("phone",
				fmt.Errorf("%q contains a non-digit character", raw))
		}
	}

	if len(normalized) < phoneMinDigits || len(normalized) > phoneMaxDigits {
		return errs.NewValueIsOutOfRangeError("phone digits", len(normalized), phoneMinDigits, phoneMaxDigits)
	}

	p.value = normalized
	return nil
}
