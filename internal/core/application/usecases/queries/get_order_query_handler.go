package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/pkg/errs"
)

// GetOrderQueryHandler reads a single order's detail view from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order's detail view, or errs.ObjectNotFoundError when
// the number is unknown.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row struct {
		Number       string
		Customer     string
		Status       int
		TotalAmount  int64
		Name         string
		Address      string
		Payment      int
		VendorPhone  *string
		PartnerPhone *string
		Rating       *int
		CreatedAt    time.Time
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			customer,
			status,
			total_amount,
			name,
			address,
			payment,
			vendor_phone,
			partner_phone,
			rating,
			created_at
		FROM orders
		WHERE number = ?
	`, query.Number().String()).Scan(&row).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if row.Number == "" {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.Number().String())
	}

	return h.buildResponse(row.Number, row.Customer, row.Status, row.TotalAmount,
		row.Name, row.Address, row.Payment, row.VendorPhone, row.PartnerPhone,
		row.Rating, row.CreatedAt)
}

func (h GetOrderQueryHandler) buildResponse(
	number, customer string, status int, totalAmount int64,
	name, address string, payment int,
	vendorPhone, partnerPhone *string, rating *int, createdAt time.Time,
) (GetOrderQueryResponse, error) {
	orderNumber, err := kernel.OrderNumberFromString(number)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	customerPhone, err := kernel.NewPhone(customer)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	total, err := kernel.NewMoney(totalAmount)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	vendor, err := optionalPhone(vendorPhone)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	partner, err := optionalPhone(partnerPhone)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		Number:       orderNumber,
		Customer:     customerPhone,
		Status:       order.Status(status),
		Total:        total,
		Name:         name,
		Address:      address,
		Payment:      order.PaymentMethod(payment),
		VendorPhone:  vendor,
		PartnerPhone: partner,
		Rating:       rating,
		CreatedAt:    createdAt,
	}, nil
}

func optionalPhone(raw *string) (*kernel.Phone, error) {
	if raw == nil {
		return nil, nil
	}

	phone, err := kernel.NewPhone(*raw)
	if err != nil {
		return nil, err
	}
	return &phone, nil
}
