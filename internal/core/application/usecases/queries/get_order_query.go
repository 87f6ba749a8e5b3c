package queries

import (
	"errors"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the detail view of one order by its number.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	number kernel.OrderNumber

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail view.
func NewGetOrderQuery(number kernel.OrderNumber) (GetOrderQuery, error) {
	if err := number.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		number: number,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Number returns the requested order number.
func (q GetOrderQuery) Number() kernel.OrderNumber {
	return q.number
}

// GetOrderQueryResponse is the detail view of a single order.
type GetOrderQueryResponse struct {
	Number       kernel.OrderNumber
	Customer     kernel.Phone
	Status       order.Status
	Total        kernel.Money
	Name         string
	Address      string
	Payment      order.PaymentMethod
	VendorPhone  *kernel.Phone
	PartnerPhone *kernel.Phone
	Rating       *int
	CreatedAt    time.Time
}
