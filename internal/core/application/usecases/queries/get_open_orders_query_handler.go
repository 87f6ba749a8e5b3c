package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
)

// GetOpenOrdersQueryHandler reads the live order workload from the database.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns every order not yet completed or rejected, oldest first.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			customer,
			status,
			total_amount,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, int(order.VendorRejected), int(order.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOpenOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			number      string
			customer    string
			status      int
			totalAmount int64
			createdAt   time.Time
		)

		if err = rows.Scan(&number, &customer, &status, &totalAmount, &createdAt); err != nil {
			return nil, err
		}

		response, convErr := buildOpenOrderResponse(number, customer, status, totalAmount, createdAt)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, response)
	}

	return orders, rows.Err()
}

func buildOpenOrderResponse(
	number, customer string, status int, totalAmount int64, createdAt time.Time,
) (GetOpenOrdersQueryResponse, error) {
	orderNumber, err := kernel.OrderNumberFromString(number)
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	customerPhone, err := kernel.NewPhone(customer)
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	total, err := kernel.NewMoney(totalAmount)
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	return GetOpenOrdersQueryResponse{
		Number:    orderNumber,
		Customer:  customerPhone,
		Status:    order.Status(status),
		Total:     total,
		CreatedAt: createdAt,
	}, nil
}
