// Package catalogrepo persists the product catalog used to price cart
// selections. The catalog is reference data: it is seeded at startup and only
// read afterwards.
package catalogrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/errs"
)

// ProductDTO represents the database structure for catalog products. Prices
// are stored in minor units.
type ProductDTO struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	PriceAmount int64
}

// TableName overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// GormCatalogRepository implements ports.CatalogLookup using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetByID retrieves one product by its catalog id.
func (r *GormCatalogRepository) GetByID(ctx context.Context, productID string) (*ports.Product, error) {
	if productID == "" {
		return nil, errs.NewValueIsRequiredError("productID")
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", productID)
		}
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceAmount)
	if err != nil {
		return nil, err
	}

	return &ports.Product{ID: dto.ID, Name: dto.Name, Price: price}, nil
}

// Seed upserts the configured products. Called once at startup so a fresh
// database serves the menu immediately.
func (r *GormCatalogRepository) Seed(ctx context.Context, products []ports.Product) error {
	if len(products) == 0 {
		return nil
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		if product.ID == "" {
			return errs.NewValueIsRequiredError("product id")
		}
		dtos = append(dtos, ProductDTO{
			ID:          product.ID,
			Name:        product.Name,
			PriceAmount: product.Price.Amount(),
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dtos).Error
}
