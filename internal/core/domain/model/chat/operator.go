package chat

import (
	"strconv"
	"strings"

	"chatorder/internal/core/domain/model/kernel"
)

// OperatorActionKind discriminates the order lifecycle commands carried by
// inbound messages.
type OperatorActionKind int

const (
	// OperatorActionUnknown is a message that is not a lifecycle command.
	OperatorActionUnknown OperatorActionKind = iota

	// ActionAccept is the vendor accepting an order.
	ActionAccept

	// ActionReject is the vendor rejecting an order.
	ActionReject

	// ActionPickedUp is the delivery partner reporting pickup.
	ActionPickedUp

	// ActionOutForDelivery is the operator marking the order en route.
	ActionOutForDelivery

	// ActionDelivered is the delivery partner reporting delivery.
	ActionDelivered

	// ActionFeedback is the customer rating a delivered order.
	ActionFeedback
)

// OperatorAction is a parsed lifecycle command naming a specific order.
type OperatorAction struct {
	Kind        OperatorActionKind
	OrderNumber kernel.OrderNumber
	Rating      int
}

// getActionVerbs returns the recognized command verbs. Both the button id form
// ("accept_ORD-123") and the typed text form ("accept ORD-123") use these.
func getActionVerbs() map[string]OperatorActionKind {
	return map[string]OperatorActionKind{
		"accept":           ActionAccept,
		"reject":           ActionReject,
		"pickedup":         ActionPickedUp,
		"picked_up":        ActionPickedUp,
		"out_for_delivery": ActionOutForDelivery,
		"ofd":              ActionOutForDelivery,
		"delivered":        ActionDelivered,
	}
}

// ParseOperatorAction extracts a lifecycle command from an inbound event.
// Recognized forms:
//
//	button id:  accept_ORD-123, reject_ORD-123
//	typed text: accept ORD-123, pickedup ORD-123, delivered ORD-123
//	feedback:   feedback 5 ORD-123
//
// Returns ok=false when the event carries no recognizable command.
func ParseOperatorAction(event InboundEvent) (OperatorAction, bool) {
	input := strings.ToLower(strings.TrimSpace(event.Input()))
	if input == "" {
		return OperatorAction{}, false
	}

	if action, ok := parseFeedback(input); ok {
		return action, true
	}

	verb, rest, found := cutCommand(input)
	if !found {
		return OperatorAction{}, false
	}

	kind, ok := getActionVerbs()[verb]
	if !ok {
		return OperatorAction{}, false
	}

	number, err := kernel.OrderNumberFromString(rest)
	if err != nil {
		return OperatorAction{}, false
	}

	return OperatorAction{Kind: kind, OrderNumber: number}, true
}

// parseFeedback recognizes "feedback <rating> <orderNumber>".
func parseFeedback(input string) (OperatorAction, bool) {
	fields := strings.Fields(input)
	if len(fields) != 3 || fields[0] != "feedback" {
		return OperatorAction{}, false
	}

	rating, err := strconv.Atoi(fields[1])
	if err != nil {
		return OperatorAction{}, false
	}

	number, err := kernel.OrderNumberFromString(fields[2])
	if err != nil {
		return OperatorAction{}, false
	}

	return OperatorAction{Kind: ActionFeedback, OrderNumber: number, Rating: rating}, true
}

// cutCommand splits "verb orderNumber" on either a space or an underscore
// joining the verb to an ORD token, handling verbs that contain underscores
// themselves (picked_up, out_for_delivery).
func cutCommand(input string) (verb, rest string, found bool) {
	if v, r, ok := strings.Cut(input, " "); ok {
		return v, strings.TrimSpace(r), true
	}

	if idx := strings.LastIndex(input, "_ord"); idx > 0 {
		return input[:idx], input[idx+1:], true
	}

	return "", "", false
}
