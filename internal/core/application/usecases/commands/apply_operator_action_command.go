package commands

import (
	"errors"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/errs"
	"chatorder/internal/pkg/guard"
)

var (
	ErrApplyOperatorActionCommandIsNotConstructed = errors.New(
		"ApplyOperatorActionCommand must be created via NewApplyOperatorActionCommand constructor",
	)
)

// ApplyOperatorActionCommand represents a parsed lifecycle command from a
// vendor, a delivery partner or, for feedback, the customer themselves.
type ApplyOperatorActionCommand struct { //nolint:recvcheck //using for validation
	sender kernel.Phone
	role   ports.Role
	action chat.OperatorAction

	guard guard.ConstructorGuard
}

// NewApplyOperatorActionCommand creates the command. The action must carry a
// recognized kind and a valid order number.
func NewApplyOperatorActionCommand(
	sender kernel.Phone,
	role ports.Role,
	action chat.OperatorAction,
) (ApplyOperatorActionCommand, error) {
	if err := sender.Validate(); err != nil {
		return ApplyOperatorActionCommand{}, err
	}
	if action.Kind == chat.OperatorActionUnknown {
		return ApplyOperatorActionCommand{}, errs.NewValueIsInvalidError("action kind")
	}
	if err := action.OrderNumber.Validate(); err != nil {
		return ApplyOperatorActionCommand{}, err
	}

	return ApplyOperatorActionCommand{
		sender: sender,
		role:   role,
		action: action,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyOperatorActionCommand) Validate() error {
	return c.guard.Validate(ErrApplyOperatorActionCommandIsNotConstructed)
}

// Sender returns the phone the command arrived from.
func (c ApplyOperatorActionCommand) Sender() kernel.Phone {
	return c.sender
}

// Role returns the sender's resolved role.
func (c ApplyOperatorActionCommand) Role() ports.Role {
	return c.role
}

// Action returns the parsed lifecycle action.
func (c ApplyOperatorActionCommand) Action() chat.OperatorAction {
	return c.action
}
