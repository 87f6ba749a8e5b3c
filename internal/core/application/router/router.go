package router

import (
	"context"
	"log/slog"

	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/keyed"
)

type (
	// ConversationHandler advances a customer dialog by one event.
	ConversationHandler interface {
		Handle(ctx context.Context, command commands.AdvanceConversationCommand) error
	}

	// OperatorHandler applies a parsed lifecycle command to an order.
	OperatorHandler interface {
		Handle(ctx context.Context, command commands.ApplyOperatorActionCommand) error
	}
)

// Router is the single entry point for inbound gateway events. It resolves
// the sender's role, serializes per sender, and dispatches: operator phones
// go to the order lifecycle, everyone else to the conversation machine.
//
// When one phone is both an operator and a customer, the operator role wins
// for recognizable commands; that is the precedence the directory encodes.
type Router struct {
	roles        ports.RoleResolver
	conversation ConversationHandler
	operator     OperatorHandler
	serializer   *keyed.Serializer
	logger       *slog.Logger
}

// NewRouter creates a Router.
func NewRouter(
	roles ports.RoleResolver,
	conversation ConversationHandler,
	operator OperatorHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		roles:        roles,
		conversation: conversation,
		operator:     operator,
		serializer:   keyed.NewSerializer(),
		logger:       logger.With("component", "router"),
	}
}

// HandleInbound routes one inbound event. Events from the same sender are
// processed strictly in call order; events from different senders proceed
// concurrently.
func (r *Router) HandleInbound(ctx context.Context, sender kernel.Phone, event chat.InboundEvent) error {
	if err := sender.Validate(); err != nil {
		return err
	}

	var err error
	r.serializer.Do(sender.String(), func() {
		err = r.route(ctx, sender, event)
	})
	return err
}

func (r *Router) route(ctx context.Context, sender kernel.Phone, event chat.InboundEvent) error {
	role := r.roles.RoleOf(sender)

	switch role {
	case ports.RoleVendor, ports.RoleDeliveryPartner:
		return r.routeOperator(ctx, sender, role, event)
	default:
		return r.routeCustomer(ctx, sender, event)
	}
}

func (r *Router) routeOperator(
	ctx context.Context, sender kernel.Phone, role ports.Role, event chat.InboundEvent,
) error {
	action, ok := chat.ParseOperatorAction(event)
	if !ok {
		// Operator chatter that is not a command is dropped, not fed to the
		// checkout dialog.
		r.logger.Debug("unrecognized operator message", "role", role.String())
		return nil
	}

	command, err := commands.NewApplyOperatorActionCommand(sender, role, action)
	if err != nil {
		return err
	}

	return r.operator.Handle(ctx, command)
}

func (r *Router) routeCustomer(ctx context.Context, sender kernel.Phone, event chat.InboundEvent) error {
	// A customer rating their delivered order is an order lifecycle command,
	// not dialog input.
	if action, ok := chat.ParseOperatorAction(event); ok && action.Kind == chat.ActionFeedback {
		command, err := commands.NewApplyOperatorActionCommand(sender, ports.RoleCustomer, action)
		if err != nil {
			return err
		}
		return r.operator.Handle(ctx, command)
	}

	command, err := commands.NewAdvanceConversationCommand(sender, event)
	if err != nil {
		return err
	}

	return r.conversation.Handle(ctx, command)
}
