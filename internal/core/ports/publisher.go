package ports

import (
	"context"

	"chatorder/internal/core/domain/model/order"
)

// OrderEventPublisher broadcasts order status changes to the message bus for
// downstream consumers (analytics, back office). Publishing is best effort:
// the order workflow never fails because the bus is down.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, aggregate *order.Order) error
}
