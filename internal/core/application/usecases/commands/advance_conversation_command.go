package commands

import (
	"errors"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/guard"
)

var (
	ErrAdvanceConversationCommandIsNotConstructed = errors.New(
		"AdvanceConversationCommand must be created via NewAdvanceConversationCommand constructor",
	)
)

// AdvanceConversationCommand represents one inbound customer event to feed
// through the checkout dialog.
type AdvanceConversationCommand struct { //nolint:recvcheck //using for validation
	customer kernel.Phone
	event    chat.InboundEvent

	guard guard.ConstructorGuard
}

// NewAdvanceConversationCommand creates the command.
func NewAdvanceConversationCommand(
	customer kernel.Phone, event chat.InboundEvent,
) (AdvanceConversationCommand, error) {
	if err := customer.Validate(); err != nil {
		return AdvanceConversationCommand{}, err
	}

	return AdvanceConversationCommand{
		customer: customer,
		event:    event,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceConversationCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceConversationCommandIsNotConstructed)
}

// Customer returns the sender.
func (c AdvanceConversationCommand) Customer() kernel.Phone {
	return c.customer
}

// Event returns the inbound event.
func (c AdvanceConversationCommand) Event() chat.InboundEvent {
	return c.event
}
