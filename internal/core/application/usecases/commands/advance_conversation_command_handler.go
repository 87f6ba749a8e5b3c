package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/session"
	"chatorder/internal/core/domain/services"
	"chatorder/internal/core/ports"
)

// AdvanceConversationCommandHandler feeds one customer event through the
// conversation machine and performs the side effects the machine asked for:
// pricing catalog selections, submitting the order, answering track requests
// and delivering the replies.
type AdvanceConversationCommandHandler struct {
	sessions   SessionStore
	catalog    ports.CatalogLookup
	orders     ports.OrderRepository
	dispatcher ReplyDispatcher
	submit     SubmitOrderCommandHandler
	machine    services.ConversationMachine
	logger     *slog.Logger
}

// NewAdvanceConversationCommandHandler creates a handler for customer dialog
// events.
func NewAdvanceConversationCommandHandler(
	sessions SessionStore,
	catalog ports.CatalogLookup,
	orders ports.OrderRepository,
	dispatcher ReplyDispatcher,
	submit SubmitOrderCommandHandler,
	logger *slog.Logger,
) AdvanceConversationCommandHandler {
	return AdvanceConversationCommandHandler{
		sessions:   sessions,
		catalog:    catalog,
		orders:     orders,
		dispatcher: dispatcher,
		submit:     submit,
		machine:    services.NewConversationMachine(),
		logger:     logger.With("component", "conversation"),
	}
}

// Handle processes one inbound customer event.
func (h AdvanceConversationCommandHandler) Handle(ctx context.Context, command AdvanceConversationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	sess, err := h.sessions.GetOrCreate(command.Customer())
	if err != nil {
		return err
	}
	sess.Touch(time.Now().UTC())

	lines := h.resolveSelections(ctx, command.Event())

	outcome, err := h.machine.Advance(sess, command.Event(), lines)
	if err != nil {
		return err
	}

	for _, reply := range outcome.Replies {
		h.dispatcher.Send(ctx, command.Customer(), reply)
	}

	if outcome.TrackOrder {
		h.sendTracking(ctx, command)
	}

	if outcome.SubmitOrder {
		return h.submitOrder(ctx, command, sess)
	}

	return nil
}

// resolveSelections prices catalog selections through the catalog. The lookup
// is fail-soft: an unknown or unreachable product falls back to the gateway's
// price hint and a placeholder name so checkout is never blocked by the
// catalog store.
func (h AdvanceConversationCommandHandler) resolveSelections(
	ctx context.Context, event chat.InboundEvent,
) []cart.Line {
	if event.Kind != chat.EventCatalogOrder {
		return nil
	}

	lines := make([]cart.Line, 0, len(event.Selections))
	for _, selection := range event.Selections {
		line := cart.Line{
			ProductID: selection.ProductID,
			Name:      fmt.Sprintf("Item %s", selection.ProductID),
			UnitPrice: selection.UnitPriceHint,
			Quantity:  selection.Quantity,
		}

		product, err := h.catalog.GetByID(ctx, selection.ProductID)
		if err != nil {
			h.logger.Warn("catalog lookup failed, using price hint",
				"product", selection.ProductID,
				"error", err,
			)
		} else {
			line.Name = product.Name
			line.UnitPrice = product.Price
		}

		lines = append(lines, line)
	}

	return lines
}

func (h AdvanceConversationCommandHandler) sendTracking(
	ctx context.Context, command AdvanceConversationCommand,
) {
	aggregates, err := h.orders.GetActiveByCustomer(ctx, command.Customer())
	if err != nil {
		h.logger.Warn("tracking lookup failed", "error", err)
		h.dispatcher.Send(ctx, command.Customer(),
			chat.TextReply("Sorry, we couldn't fetch your orders just now. Please try again."))
		return
	}

	h.dispatcher.Send(ctx, command.Customer(), chat.TextReply(buildTrackingText(aggregates)))
}

// submitOrder turns the session into an order. The session is reset only
// after the order is stored; a storage failure keeps the customer on the
// confirmation summary so confirm can simply be retried.
func (h AdvanceConversationCommandHandler) submitOrder(
	ctx context.Context, command AdvanceConversationCommand, sess *session.Session,
) error {
	submitCommand, err := NewSubmitOrderCommand(
		command.Customer(), sess.Cart(), sess.Profile(), sess.DropOff(),
	)
	if err != nil {
		return err
	}

	err = h.submit.Handle(ctx, submitCommand)

	switch {
	case errors.Is(err, services.ErrVendorNotFound):
		h.dispatcher.Send(ctx, command.Customer(), chat.TextReply(noVendorText))
		sess.Reset()
		return nil

	case err != nil:
		h.logger.Error("order submission failed", "error", err)
		h.dispatcher.Send(ctx, command.Customer(), chat.TextReply(submitFailedText))
		return err

	default:
		sess.Reset()
		return nil
	}
}
