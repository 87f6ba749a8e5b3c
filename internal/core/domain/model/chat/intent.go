package chat

import "strings"

// Intent is the closed vocabulary of customer inputs recognized by the
// conversation state machine. Unrecognized inputs map to IntentUnknown, which
// the machine answers with the current state's canonical re-prompt.
type Intent int

const (
	// IntentUnknown is any input outside the recognized vocabulary.
	IntentUnknown Intent = iota

	// IntentGreeting opens or restarts the dialog ("hi", "hello").
	IntentGreeting

	// IntentOrder asks for the catalog ("order", "menu", the Order Now button).
	IntentOrder

	// IntentCheckout starts collecting fulfillment details.
	IntentCheckout

	// IntentClearCart empties the cart while browsing.
	IntentClearCart

	// IntentConfirm places the order from the confirmation summary.
	IntentConfirm

	// IntentModify returns from the confirmation summary to browsing.
	IntentModify

	// IntentTrack asks for the status of active orders.
	IntentTrack

	// IntentContact asks for the support contact.
	IntentContact

	// IntentHelp asks how to use the dialog.
	IntentHelp
)

// getIntentVocabulary returns the recognized input strings per intent.
// Inputs are matched after lower-casing and trimming.
func getIntentVocabulary() map[string]Intent {
	return map[string]Intent{
		"hi":           IntentGreeting,
		"hello":        IntentGreeting,
		"hey":          IntentGreeting,
		"start":        IntentGreeting,
		"namaste":      IntentGreeting,
		"order":        IntentOrder,
		"menu":         IntentOrder,
		"order_now":    IntentOrder,
		"browse":       IntentOrder,
		"checkout":     IntentCheckout,
		"buy":          IntentCheckout,
		"done":         IntentCheckout,
		"clear":        IntentClearCart,
		"clear_cart":   IntentClearCart,
		"empty cart":   IntentClearCart,
		"confirm":      IntentConfirm,
		"place_order":  IntentConfirm,
		"place order":  IntentConfirm,
		"yes":          IntentConfirm,
		"modify":       IntentModify,
		"edit":         IntentModify,
		"change":       IntentModify,
		"modify_order": IntentModify,
		"track":        IntentTrack,
		"track_order":  IntentTrack,
		"status":       IntentTrack,
		"contact":      IntentContact,
		"contact_us":   IntentContact,
		"help":         IntentHelp,
	}
}

// IntentOf normalizes a raw input string to an Intent.
func IntentOf(input string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if intent, ok := getIntentVocabulary()[normalized]; ok {
		return intent
	}
	return IntentUnknown
}
