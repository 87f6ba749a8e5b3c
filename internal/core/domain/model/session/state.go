package session

// State is the customer's position in the checkout dialog. It is a view over
// the conversation only; order progress lives in the order aggregate.
type State int

const (
	// Unknown represents an invalid or uninitialized state.
	Unknown State = iota

	// Initial is the resting state before and after an order.
	Initial

	// Browsing means the catalog was presented and selections are welcome.
	Browsing

	// CollectingName waits for the customer's name.
	CollectingName

	// CollectingAddress waits for a delivery address or location share.
	CollectingAddress

	// CollectingPayment waits for one of the fixed payment methods.
	CollectingPayment

	// Confirming presented the order summary and waits for confirm/modify.
	Confirming
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:           "Unknown",
		Initial:           "Initial",
		Browsing:          "Browsing",
		CollectingName:    "CollectingName",
		CollectingAddress: "CollectingAddress",
		CollectingPayment: "CollectingPayment",
		Confirming:        "Confirming",
	}
}

// String returns the state name, or "Unknown" for invalid values.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
