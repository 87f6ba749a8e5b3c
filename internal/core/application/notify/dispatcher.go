// Package notify delivers outbound replies through the messaging gateway,
// retrying transient failures with exponential backoff. Delivery is best
// effort: a message that keeps failing is logged and dropped so the order
// workflow never stalls on the gateway.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/errs"
)

const (
	maxSendRetries  = 3
	initialInterval = 200 * time.Millisecond
)

// Dispatcher renders typed replies through a ports.Notifier with bounded
// retry.
type Dispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(notifier ports.Notifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		logger:   logger.With("component", "notify"),
	}
}

// Send delivers one reply, retrying up to maxSendRetries times on failure.
// The final loss is logged, never returned.
func (d *Dispatcher) Send(ctx context.Context, to kernel.Phone, reply chat.Reply) {
	operation := func() error {
		return d.deliver(ctx, to, reply)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newExponentialBackOff(), maxSendRetries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		d.logger.Error("message dropped",
			"to", to.String(),
			"kind", int(reply.Kind),
			"error", err,
		)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, to kernel.Phone, reply chat.Reply) error {
	switch reply.Kind {
	case chat.ReplyText:
		return d.notifier.SendText(ctx, to, reply.Body)
	case chat.ReplyChoice:
		return d.notifier.SendChoice(ctx, to, reply.Body, reply.Options)
	case chat.ReplyCatalog:
		return d.notifier.SendCatalogPrompt(ctx, to)
	default:
		return backoff.Permanent(errs.NewValueIsInvalidError("reply kind"))
	}
}

func newExponentialBackOff() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialInterval
	return policy
}
