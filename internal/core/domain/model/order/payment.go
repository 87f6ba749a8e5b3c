package order

import "strings"

// PaymentMethod is the closed set of payment options offered at checkout.
type PaymentMethod int

const (
	// PaymentUnknown is an unrecognized or unset method.
	PaymentUnknown PaymentMethod = iota

	// PaymentCash is cash on delivery.
	PaymentCash

	// PaymentUPI is a UPI transfer on delivery.
	PaymentUPI

	// PaymentCard is a card payment on delivery.
	PaymentCard
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentCash: "cash",
		PaymentUPI:  "upi",
		PaymentCard: "card",
	}
}

// ParsePaymentMethod maps customer input to a payment method. Returns ok=false
// for anything outside the fixed vocabulary.
func ParsePaymentMethod(input string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "cash", "cod", "pay_cash", "cash_on_delivery":
		return PaymentCash, true
	case "upi", "pay_upi":
		return PaymentUPI, true
	case "card", "pay_card", "credit_card", "debit_card":
		return PaymentCard, true
	default:
		return PaymentUnknown, false
	}
}

// String returns the customer-facing method name, or "unknown".
func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}

// Profile holds the fulfillment details collected during checkout. The copy
// embedded in an Order is a snapshot taken at submission and never changes.
type Profile struct {
	Name    string
	Address string
	Payment PaymentMethod
}

// IsComplete reports whether every checkout field has been collected.
func (p Profile) IsComplete() bool {
	return p.Name != "" && p.Address != "" && p.Payment != PaymentUnknown
}
