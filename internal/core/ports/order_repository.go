// Package ports defines the contracts between the application core and
// infrastructure: persistence, the messaging gateway, the actor directory and
// the event bus. Adapters implement these interfaces, enabling dependency
// inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
)

// ErrOrderStatusConflict is returned by UpdateIfStatus when the stored status
// no longer matches the expected one, meaning another event already moved the
// order forward.
var ErrOrderStatusConflict = errors.New("order status conflict")

// OrderRepository defines the persistence contract for order aggregates.
// Orders are the system of record; sessions are not persisted.
type OrderRepository interface {
	// Add persists a new order aggregate. The order number must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order unconditionally. Used for
	// fields that carry no transition semantics, such as feedback.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists the aggregate only while the stored status
	// still equals expected. Returns ErrOrderStatusConflict otherwise. This
	// is the compare-and-swap that makes duplicate operator commands ack-only.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// GetByNumber retrieves an order by its customer-facing number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetActiveByCustomer retrieves the customer's orders that have not yet
	// reached a terminal status, most recent first.
	GetActiveByCustomer(ctx context.Context, customer kernel.Phone) ([]*order.Order, error)

	// GetAllPendingBefore retrieves orders still awaiting vendor confirmation
	// that were created before the given cutoff. Used by the reminder job.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
