package commands

import (
	"context"
	"log/slog"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/domain/services"
	"chatorder/internal/core/ports"
)

// SubmitOrderCommandHandler turns a confirmed checkout into a stored order:
// it picks a vendor, persists the aggregate and alerts both the vendor and
// the customer.
//
// Failures before the store leave nothing behind, so the caller can keep the
// session on the confirmation summary and let the customer retry.
type SubmitOrderCommandHandler struct {
	orders     ports.OrderRepository
	directory  ports.VendorDirectory
	publisher  ports.OrderEventPublisher
	dispatcher ReplyDispatcher
	assigner   services.VendorAssigner
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
func NewSubmitOrderCommandHandler(
	orders ports.OrderRepository,
	directory ports.VendorDirectory,
	publisher ports.OrderEventPublisher,
	dispatcher ReplyDispatcher,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		orders:     orders,
		directory:  directory,
		publisher:  publisher,
		dispatcher: dispatcher,
		assigner:   services.NewVendorAssigner(),
		logger:     logger.With("component", "submit_order"),
	}
}

// Handle processes the submission. Returns services.ErrVendorNotFound when no
// vendor can serve the order; any other error means the order was not stored
// and the submission can be retried.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, command SubmitOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	vendors, err := h.directory.Vendors(ctx)
	if err != nil {
		return err
	}

	picked, err := h.assigner.Assign(command.DropOff(), vendors)
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NextOrderNumber(),
		command.Customer(),
		command.Cart(),
		command.Profile(),
		command.DropOff(),
	)
	if err != nil {
		return err
	}

	if err = aggregate.AssignVendor(picked.Phone()); err != nil {
		return err
	}

	if err = h.orders.Add(ctx, aggregate); err != nil {
		return err
	}

	h.publish(ctx, aggregate)

	h.dispatcher.Send(ctx, picked.Phone(), buildVendorAlert(aggregate))
	h.dispatcher.Send(ctx, command.Customer(), chat.TextReply(buildOrderPlacedText(picked.Name())))

	h.logger.Info("order submitted",
		"order", aggregate.Number().String(),
		"vendor", picked.Name(),
		"total", aggregate.Total().String(),
	)

	return nil
}

func (h SubmitOrderCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if err := h.publisher.PublishStatusChanged(ctx, aggregate); err != nil {
		h.logger.Warn("status event not published",
			"order", aggregate.Number().String(),
			"error", err,
		)
	}
}
