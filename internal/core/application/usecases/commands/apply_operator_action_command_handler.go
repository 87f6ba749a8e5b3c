package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/errs"
)

// ApplyOperatorActionCommandHandler drives the order lifecycle from operator
// commands: vendor accept/reject, delivery partner progress reports and the
// customer's post-delivery feedback.
//
// Every status write is a compare-and-swap against the status the command
// read. A duplicate or late command therefore finds the order already moved,
// gets a short acknowledgement, and triggers no customer notification.
type ApplyOperatorActionCommandHandler struct {
	orders     ports.OrderRepository
	directory  ports.VendorDirectory
	publisher  ports.OrderEventPublisher
	dispatcher ReplyDispatcher
	sessions   SessionStore
	admin      kernel.Phone
	logger     *slog.Logger
}

// NewApplyOperatorActionCommandHandler creates a handler for operator
// lifecycle commands. The admin phone receives the manual follow-up notices
// (vendor rejections).
func NewApplyOperatorActionCommandHandler(
	orders ports.OrderRepository,
	directory ports.VendorDirectory,
	publisher ports.OrderEventPublisher,
	dispatcher ReplyDispatcher,
	sessions SessionStore,
	admin kernel.Phone,
	logger *slog.Logger,
) ApplyOperatorActionCommandHandler {
	return ApplyOperatorActionCommandHandler{
		orders:     orders,
		directory:  directory,
		publisher:  publisher,
		dispatcher: dispatcher,
		sessions:   sessions,
		admin:      admin,
		logger:     logger.With("component", "operator_action"),
	}
}

// Handle processes one lifecycle command. Business rejections (unknown order,
// unauthorized sender, invalid or stale transition) are answered to the
// sender and return nil; only infrastructure failures surface as errors.
func (h ApplyOperatorActionCommandHandler) Handle(ctx context.Context, command ApplyOperatorActionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	action := command.Action()

	aggregate, err := h.orders.GetByNumber(ctx, action.OrderNumber)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.reply(ctx, command, fmt.Sprintf("Order %s not found.", action.OrderNumber))
		return nil
	}
	if err != nil {
		return err
	}

	if !h.authorized(command, aggregate) {
		h.reply(ctx, command, fmt.Sprintf("You are not assigned to order %s.", action.OrderNumber))
		return nil
	}

	switch action.Kind {
	case chat.ActionAccept:
		return h.accept(ctx, command, aggregate)
	case chat.ActionReject:
		return h.reject(ctx, command, aggregate)
	case chat.ActionPickedUp:
		return h.progress(ctx, command, aggregate, (*order.Order).PickUp)
	case chat.ActionOutForDelivery:
		return h.progress(ctx, command, aggregate, (*order.Order).StartDelivery)
	case chat.ActionDelivered:
		return h.deliver(ctx, command, aggregate)
	case chat.ActionFeedback:
		return h.feedback(ctx, command, aggregate)
	default:
		return errs.NewValueIsInvalidError("action kind")
	}
}

// authorized checks that the sender actually owns the role the action needs
// on this specific order. A vendor can only act on orders assigned to their
// phone, a delivery partner on their tasks, and feedback must come from the
// ordering customer.
func (h ApplyOperatorActionCommandHandler) authorized(
	command ApplyOperatorActionCommand, aggregate *order.Order,
) bool {
	sender := command.Sender()

	switch command.Action().Kind {
	case chat.ActionAccept, chat.ActionReject:
		return command.Role() == ports.RoleVendor &&
			aggregate.Vendor() != nil && aggregate.Vendor().IsEqual(sender)

	case chat.ActionPickedUp, chat.ActionOutForDelivery, chat.ActionDelivered:
		return command.Role() == ports.RoleDeliveryPartner &&
			aggregate.DeliveryPartner() != nil && aggregate.DeliveryPartner().IsEqual(sender)

	case chat.ActionFeedback:
		return aggregate.Customer().IsEqual(sender)

	default:
		return false
	}
}

func (h ApplyOperatorActionCommandHandler) accept(
	ctx context.Context, command ApplyOperatorActionCommand, aggregate *order.Order,
) error {
	ok, err := h.transition(ctx, command, aggregate, (*order.Order).Accept)
	if err != nil || !ok {
		return err
	}

	vendorName := vendorNameFor(ctx, h.directory, aggregate.Vendor())
	h.send(ctx, aggregate.Customer(), chat.TextReply(buildAcceptedText(vendorName, aggregate.Number())))
	h.reply(ctx, command, fmt.Sprintf("✅ Order %s confirmed. Thank you!", aggregate.Number()))

	return h.assignPartner(ctx, aggregate, vendorName)
}

// assignPartner hands the accepted order to the first available delivery
// partner. No partner available is not an error: the customer is told one is
// being found, and the order stays in VendorAccepted until a later accept of
// the same kind or an operator retry picks it up.
func (h ApplyOperatorActionCommandHandler) assignPartner(
	ctx context.Context, aggregate *order.Order, vendorName string,
) error {
	partners, err := h.directory.AvailablePartners(ctx)
	if err != nil {
		h.logger.Warn("partner lookup failed", "order", aggregate.Number().String(), "error", err)
		h.send(ctx, aggregate.Customer(), chat.TextReply(findingPartnerText))
		return nil
	}
	if len(partners) == 0 {
		h.send(ctx, aggregate.Customer(), chat.TextReply(findingPartnerText))
		return nil
	}

	partner := partners[0]

	expected := aggregate.Status()
	if err = aggregate.AssignDeliveryPartner(partner.Phone()); err != nil {
		return err
	}

	if err = h.orders.UpdateIfStatus(ctx, aggregate, expected); err != nil {
		if errors.Is(err, ports.ErrOrderStatusConflict) {
			return nil
		}
		return err
	}

	h.publish(ctx, aggregate)
	h.send(ctx, partner.Phone(), buildPartnerTask(aggregate, vendorName))
	h.send(ctx, aggregate.Customer(), chat.TextReply(buildPartnerAssignedText(partner.Name())))

	return nil
}

func (h ApplyOperatorActionCommandHandler) reject(
	ctx context.Context, command ApplyOperatorActionCommand, aggregate *order.Order,
) error {
	ok, err := h.transition(ctx, command, aggregate, (*order.Order).Reject)
	if err != nil || !ok {
		return err
	}

	vendorName := vendorNameFor(ctx, h.directory, aggregate.Vendor())
	h.send(ctx, aggregate.Customer(), chat.TextReply(buildRejectedText(vendorName, aggregate.Number())))
	h.send(ctx, h.admin, chat.TextReply(buildAdminRejectNoticeText(aggregate, vendorName)))
	h.reply(ctx, command, fmt.Sprintf("Order %s rejected.", aggregate.Number()))

	// The dialog state is tied to the failed order; the customer starts over.
	h.sessions.Remove(aggregate.Customer())

	return nil
}

func (h ApplyOperatorActionCommandHandler) progress(
	ctx context.Context, command ApplyOperatorActionCommand,
	aggregate *order.Order, move func(*order.Order) error,
) error {
	ok, err := h.transition(ctx, command, aggregate, move)
	if err != nil || !ok {
		return err
	}

	h.send(ctx, aggregate.Customer(), chat.TextReply(buildProgressText(aggregate.Status())))
	h.reply(ctx, command, fmt.Sprintf("Order %s updated: %s.", aggregate.Number(), aggregate.Status()))

	return nil
}

func (h ApplyOperatorActionCommandHandler) deliver(
	ctx context.Context, command ApplyOperatorActionCommand, aggregate *order.Order,
) error {
	ok, err := h.transition(ctx, command, aggregate, (*order.Order).Deliver)
	if err != nil || !ok {
		return err
	}

	h.send(ctx, aggregate.Customer(), chat.TextReply(buildProgressText(aggregate.Status())))
	h.send(ctx, aggregate.Customer(), chat.TextReply(buildFeedbackRequestText(aggregate.Number())))
	h.reply(ctx, command, fmt.Sprintf("Order %s updated: %s.", aggregate.Number(), aggregate.Status()))

	return nil
}

func (h ApplyOperatorActionCommandHandler) feedback(
	ctx context.Context, command ApplyOperatorActionCommand, aggregate *order.Order,
) error {
	expected := aggregate.Status()

	if err := aggregate.AttachFeedback(command.Action().Rating); err != nil {
		if errors.Is(err, errs.ErrValueIsOutOfRange) {
			h.reply(ctx, command, "Please rate between 1 (Poor) and 5 (Excellent).")
			return nil
		}
		h.replyStale(ctx, command, aggregate)
		return nil
	}

	if err := h.orders.UpdateIfStatus(ctx, aggregate, expected); err != nil {
		if errors.Is(err, ports.ErrOrderStatusConflict) {
			h.replyStale(ctx, command, aggregate)
			return nil
		}
		return err
	}

	h.publish(ctx, aggregate)
	h.reply(ctx, command, feedbackThanksText)

	return nil
}

// transition applies a status move and persists it with a compare-and-swap.
// Returns ok=false when the move was rejected or raced a concurrent update;
// in both cases the sender got an acknowledgement and nothing else happens.
func (h ApplyOperatorActionCommandHandler) transition(
	ctx context.Context, command ApplyOperatorActionCommand,
	aggregate *order.Order, move func(*order.Order) error,
) (bool, error) {
	expected := aggregate.Status()

	if err := move(aggregate); err != nil {
		h.replyStale(ctx, command, aggregate)
		return false, nil
	}

	if err := h.orders.UpdateIfStatus(ctx, aggregate, expected); err != nil {
		if errors.Is(err, ports.ErrOrderStatusConflict) {
			h.logger.Info("stale operator command",
				"order", aggregate.Number().String(),
				"action", int(command.Action().Kind),
			)
			h.replyStale(ctx, command, aggregate)
			return false, nil
		}
		return false, err
	}

	h.publish(ctx, aggregate)
	return true, nil
}

func (h ApplyOperatorActionCommandHandler) replyStale(
	ctx context.Context, command ApplyOperatorActionCommand, aggregate *order.Order,
) {
	h.reply(ctx, command, fmt.Sprintf(
		"⚠️ Order %s can't take that update right now (status: %s).",
		aggregate.Number(), aggregate.Status(),
	))
}

func (h ApplyOperatorActionCommandHandler) reply(
	ctx context.Context, command ApplyOperatorActionCommand, text string,
) {
	h.send(ctx, command.Sender(), chat.TextReply(text))
}

func (h ApplyOperatorActionCommandHandler) send(ctx context.Context, to kernel.Phone, reply chat.Reply) {
	h.dispatcher.Send(ctx, to, reply)
}

func (h ApplyOperatorActionCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if err := h.publisher.PublishStatusChanged(ctx, aggregate); err != nil {
		h.logger.Warn("status event not published",
			"order", aggregate.Number().String(),
			"error", err,
		)
	}
}
