package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Catalog is the static item to unit-price table. It is built once at
// startup and never mutated, so it is safe to share across requests
// without locking.
type Catalog map[string]decimal.Decimal

// DefaultCatalog returns the fixed menu.
func DefaultCatalog() Catalog {
	return Catalog{
		"Pasta":         decimal.NewFromFloat(120.00),
		"Chi-Momo":      decimal.NewFromFloat(160.00),
		"Burger":        decimal.NewFromFloat(220.00),
		"Coffee":        decimal.NewFromFloat(120.00),
		"Tea":           decimal.NewFromFloat(30.00),
		"Chowmein":      decimal.NewFromFloat(180.00),
		"Samosa":        decimal.NewFromFloat(35.00),
		"Keema Noodles": decimal.NewFromFloat(190.00),
		"Laphing":       decimal.NewFromFloat(120.00),
		"Corn Dog":      decimal.NewFromFloat(220.00),
		"Sauces":        decimal.NewFromFloat(330.00),
		"Momo":          decimal.NewFromFloat(150.00),
	}
}

// UnitPrice looks up the price of a catalog item.
func (c Catalog) UnitPrice(name string) (decimal.Decimal, bool) {
	price, ok := c[name]
	return price, ok
}

// ItemNames returns the catalog item names in sorted order.
func (c Catalog) ItemNames() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
