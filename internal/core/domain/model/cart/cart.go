// Package cart implements the pure cart aggregation logic: merging catalog
// selections into priced line items and summarizing them. Carts are immutable
// values; every operation returns a new cart, and the total is always
// recomputed from the lines, never cached.
package cart

import (
	"fmt"
	"sort"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"
)

// Line is one priced cart entry. Quantities for the same product merge
// additively across Add calls.
type Line struct {
	ProductID string
	Name      string
	UnitPrice kernel.Money
	Quantity  int
}

// Subtotal returns UnitPrice multiplied by Quantity.
func (l Line) Subtotal() kernel.Money {
	return l.UnitPrice.MultiplyQty(l.Quantity)
}

// Cart is an immutable set of lines keyed by product id. The zero value is a
// valid empty cart.
type Cart struct {
	lines map[string]Line
}

// NewCart returns an empty cart.
func NewCart() Cart {
	return Cart{}
}

// Add merges the given lines into the cart and returns the resulting cart.
// An already-present product id has its quantity incremented; a new product id
// is inserted as-is. The receiver is never mutated. Returns an error when a
// line has an empty product id or a non-positive quantity.
func (c Cart) Add(items ...Line) (Cart, error) {
	merged := make(map[string]Line, len(c.lines)+len(items))
	for id, line := range c.lines {
		merged[id] = line
	}

	for _, item := range items {
		if item.ProductID == "" {
			return Cart{}, errs.NewValueIsRequiredError("product id")
		}
		if item.Quantity <= 0 {
			return Cart{}, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}

		if existing, ok := merged[item.ProductID]; ok {
			existing.Quantity += item.Quantity
			merged[item.ProductID] = existing
			continue
		}
		merged[item.ProductID] = item
	}

	return Cart{lines: merged}, nil
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return NewCart()
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Size returns the number of distinct products in the cart.
func (c Cart) Size() int {
	return len(c.lines)
}

// Summarize returns the cart lines ordered by product id together with the
// recomputed total. It is pure: repeated calls return the same result and the
// cart is never modified.
func (c Cart) Summarize() ([]Line, kernel.Money) {
	lines := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})

	var total kernel.Money
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	return lines, total
}
