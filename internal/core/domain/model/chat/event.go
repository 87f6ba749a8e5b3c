package chat

import "chatorder/internal/core/domain/model/kernel"

// EventKind discriminates the inbound event union.
type EventKind int

const (
	// EventUnknown is an unrecognized or empty gateway payload.
	EventUnknown EventKind = iota

	// EventText is a free-text message.
	EventText

	// EventButton is a tapped button or list selection, identified by id.
	EventButton

	// EventLocation is a shared location payload.
	EventLocation

	// EventCatalogOrder is a submitted catalog cart.
	EventCatalogOrder
)

// Selection is one catalog line in an EventCatalogOrder payload. UnitPriceHint
// is the price the gateway reported with the selection; it is used as a
// fallback when the catalog lookup fails.
type Selection struct {
	ProductID     string
	Quantity      int
	UnitPriceHint kernel.Money
}

// InboundEvent is a typed inbound message. Only the fields relevant to Kind
// are populated.
type InboundEvent struct {
	Kind         EventKind
	Text         string
	ButtonID     string
	Location     *kernel.Location
	LocationName string
	Selections   []Selection
}

// NewTextEvent wraps a free-text message.
func NewTextEvent(text string) InboundEvent {
	return InboundEvent{Kind: EventText, Text: text}
}

// NewButtonEvent wraps a button or list selection.
func NewButtonEvent(id string) InboundEvent {
	return InboundEvent{Kind: EventButton, ButtonID: id}
}

// NewLocationEvent wraps a shared location with its optional place label.
func NewLocationEvent(location kernel.Location, name string) InboundEvent {
	return InboundEvent{Kind: EventLocation, Location: &location, LocationName: name}
}

// NewCatalogOrderEvent wraps a submitted catalog cart.
func NewCatalogOrderEvent(selections []Selection) InboundEvent {
	return InboundEvent{Kind: EventCatalogOrder, Selections: selections}
}

// Input returns the normalized user input carried by the event: the text body
// for text messages, the button id for selections, empty otherwise.
func (e InboundEvent) Input() string {
	switch e.Kind {
	case EventText:
		return e.Text
	case EventButton:
		return e.ButtonID
	default:
		return ""
	}
}
