package commands

import (
	"errors"
	"time"

	"chatorder/internal/pkg/errs"
	"chatorder/internal/pkg/guard"
)

// ErrRemindPendingOrdersCommandIsNotConstructed is returned when a zero-value
// command is handled.
var ErrRemindPendingOrdersCommandIsNotConstructed = errors.New(
	"RemindPendingOrdersCommand must be created via NewRemindPendingOrdersCommand")

// RemindPendingOrdersCommand asks for a vendor nudge on every order that has
// been waiting for confirmation longer than the threshold.
type RemindPendingOrdersCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewRemindPendingOrdersCommand creates the command. The threshold must be
// positive.
func NewRemindPendingOrdersCommand(olderThan time.Duration) (RemindPendingOrdersCommand, error) {
	if olderThan <= 0 {
		return RemindPendingOrdersCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	return RemindPendingOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate returns an error for the zero value.
func (c RemindPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindPendingOrdersCommandIsNotConstructed)
}

// OlderThan returns how long an order must have been pending to qualify.
func (c RemindPendingOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
