package ports

import (
	"context"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
)

// Notifier is the outbound messaging gateway. Implementations render the
// typed replies into the gateway's wire format; delivery retries live in the
// notification dispatcher, not here.
type Notifier interface {
	// SendText delivers a plain text message.
	SendText(ctx context.Context, to kernel.Phone, body string) error

	// SendChoice delivers a text body with tappable options.
	SendChoice(ctx context.Context, to kernel.Phone, body string, options []chat.Option) error

	// SendCatalogPrompt delivers the interactive catalog browser.
	SendCatalogPrompt(ctx context.Context, to kernel.Phone) error
}
