package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"
)

// RemindPendingOrdersCommandHandler nudges vendors about orders that sat in
// vendor confirmation past the threshold and flags each one to the admin for
// manual follow-up. The nudge repeats the original alert; the lifecycle
// itself only moves on explicit operator commands.
type RemindPendingOrdersCommandHandler struct {
	orders     ports.OrderRepository
	dispatcher ReplyDispatcher
	admin      kernel.Phone
	logger     *slog.Logger
}

// NewRemindPendingOrdersCommandHandler creates a handler for pending order
// reminders.
func NewRemindPendingOrdersCommandHandler(
	orders ports.OrderRepository,
	dispatcher ReplyDispatcher,
	admin kernel.Phone,
	logger *slog.Logger,
) RemindPendingOrdersCommandHandler {
	return RemindPendingOrdersCommandHandler{
		orders:     orders,
		dispatcher: dispatcher,
		admin:      admin,
		logger:     logger.With("component", "remind_pending_orders"),
	}
}

// Handle re-alerts the vendor of every qualifying order. Returns the number
// of reminders sent.
func (h RemindPendingOrdersCommandHandler) Handle(ctx context.Context, command RemindPendingOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-command.OlderThan())
	pending, err := h.orders.GetAllPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	reminded := 0
	for _, aggregate := range pending {
		vendorPhone := aggregate.Vendor()
		if vendorPhone == nil {
			h.logger.Warn("pending order without vendor", "order", aggregate.Number().String())
			continue
		}

		h.dispatcher.Send(ctx, *vendorPhone, buildVendorReminder(aggregate))
		h.dispatcher.Send(ctx, h.admin, chat.TextReply(buildAdminStuckOrderText(aggregate)))
		reminded++

		h.logger.Info("vendor reminded",
			"order", aggregate.Number().String(),
			"pending_since", aggregate.CreatedAt(),
		)
	}

	return reminded, nil
}

func buildVendorReminder(aggregate *order.Order) chat.Reply {
	reminder := buildVendorAlert(aggregate)
	reminder.Body = fmt.Sprintf("⏰ Reminder: order %s is still waiting for your confirmation.\n\n%s",
		aggregate.Number().String(), reminder.Body)
	return reminder
}
