// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: constructor
// validation, then a Handle method that orchestrates domain objects, ports
// and outbound notifications.
package commands

import (
	"context"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/session"
)

type (
	// SessionStore is the in-memory conversation state owned by the router.
	// Handlers read and mutate sessions through it; per-sender serialization
	// upstream guarantees a customer's session is never handled concurrently.
	SessionStore interface {
		// GetOrCreate returns the customer's session, creating a fresh one
		// in the Initial state when none exists.
		GetOrCreate(customer kernel.Phone) (*session.Session, error)

		// Remove drops the customer's session. The next inbound event starts
		// a fresh dialog.
		Remove(customer kernel.Phone)
	}

	// ReplyDispatcher delivers outbound messages best effort. Implementations
	// retry transient gateway failures and log the final loss; delivery
	// problems never fail the order workflow, so Send returns nothing.
	ReplyDispatcher interface {
		Send(ctx context.Context, to kernel.Phone, reply chat.Reply)
	}
)
