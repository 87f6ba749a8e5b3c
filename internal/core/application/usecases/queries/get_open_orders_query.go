// Package queries contains read-only operations over the order store. Query
// handlers read projection rows directly instead of going through the
// aggregate repository, keeping the read side of the CQRS split cheap.
package queries

import (
	"errors"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery retrieves all orders that have not reached a terminal
// status. Used by the operations endpoint to watch the live workload.
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query for the live order workload.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is one open order row.
type GetOpenOrdersQueryResponse struct {
	Number    kernel.OrderNumber
	Customer  kernel.Phone
	Status    order.Status
	Total     kernel.Money
	CreatedAt time.Time
}
