// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The customer+status composite index serves the tracking and reminder
// queries; the unique index on number backs operator command lookups.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex"`
	Customer     string    `gorm:"index:idx_orders_customer_status"`
	Status       int       `gorm:"index:idx_orders_customer_status"`
	Items        []byte    `gorm:"type:jsonb"`
	TotalAmount  int64
	Name         string
	Address      string
	Payment      int
	DropLat      *float64
	DropLon      *float64
	VendorPhone  *string
	PartnerPhone *string
	Rating       *int
	CreatedAt    time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// lineDTO is the JSON shape of one snapshotted cart line.
type lineDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	lines := make([]lineDTO, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		lines = append(lines, lineDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.Amount(),
			Quantity:  line.Quantity,
		})
	}

	items, err := json.Marshal(lines)
	if err != nil {
		return OrderDTO{}, err
	}

	var dropLat, dropLon *float64
	if loc := aggregate.DropOff(); loc != nil {
		lat, lon := loc.Lat(), loc.Lon()
		dropLat, dropLon = &lat, &lon
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number().String(),
		Customer:     aggregate.Customer().String(),
		Status:       int(aggregate.Status()),
		Items:        items,
		TotalAmount:  aggregate.Total().Amount(),
		Name:         aggregate.Profile().Name,
		Address:      aggregate.Profile().Address,
		Payment:      int(aggregate.Profile().Payment),
		DropLat:      dropLat,
		DropLon:      dropLon,
		VendorPhone:  phoneToString(aggregate.Vendor()),
		PartnerPhone: phoneToString(aggregate.DeliveryPartner()),
		Rating:       aggregate.Rating(),
		CreatedAt:    aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database row back to an order aggregate using
// RestoreOrder, bypassing the submission rules.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	customer, err := kernel.NewPhone(dto.Customer)
	if err != nil {
		return nil, err
	}

	items, total, err := itemsFromJSON(dto.Items, dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	var dropOff *kernel.Location
	if dto.DropLat != nil && dto.DropLon != nil {
		loc, locErr := kernel.NewLocation(*dto.DropLat, *dto.DropLon)
		if locErr != nil {
			return nil, locErr
		}
		dropOff = &loc
	}

	vendorPhone, err := phoneFromString(dto.VendorPhone)
	if err != nil {
		return nil, err
	}

	partnerPhone, err := phoneFromString(dto.PartnerPhone)
	if err != nil {
		return nil, err
	}

	profile := order.Profile{
		Name:    dto.Name,
		Address: dto.Address,
		Payment: order.PaymentMethod(dto.Payment),
	}

	return order.RestoreOrder(
		id, number, customer, items, total, profile, dropOff,
		order.Status(dto.Status), vendorPhone, partnerPhone, dto.Rating, dto.CreatedAt,
	)
}

func itemsFromJSON(raw []byte, totalAmount int64) ([]cart.Line, kernel.Money, error) {
	var dtos []lineDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, kernel.Money{}, err
	}

	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		price, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, kernel.Money{}, err
		}
		lines = append(lines, cart.Line{
			ProductID: dto.ProductID,
			Name:      dto.Name,
			UnitPrice: price,
			Quantity:  dto.Quantity,
		})
	}

	total, err := kernel.NewMoney(totalAmount)
	if err != nil {
		return nil, kernel.Money{}, err
	}

	return lines, total, nil
}

func phoneToString(phone *kernel.Phone) *string {
	if phone == nil {
		return nil
	}
	s := phone.String()
	return &s
}

func phoneFromString(raw *string) (*kernel.Phone, error) {
	if raw == nil {
		return nil, nil
	}
	phone, err := kernel.NewPhone(*raw)
	if err != nil {
		return nil, err
	}
	return &phone, nil
}
