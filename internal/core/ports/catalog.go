package ports

import (
	"context"

	"chatorder/internal/core/domain/model/kernel"
)

// Product is the catalog read model used to price cart selections.
type Product struct {
	ID    string
	Name  string
	Price kernel.Money
}

// CatalogLookup resolves catalog product ids to names and prices. A failed
// lookup must not block checkout; callers fall back to the gateway's price
// hint and a placeholder name.
type CatalogLookup interface {
	// GetByID retrieves one product. Returns errs.ObjectNotFoundError when
	// the id is not in the catalog.
	GetByID(ctx context.Context, productID string) (*Product, error)
}
