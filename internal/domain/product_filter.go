package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductFilter has AND semantics across fields. Nil fields do not
// constrain the result.
type ProductFilter struct {
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// InStock true keeps stock > 0, false keeps stock == 0.
	InStock *bool
	// Search is a case-insensitive substring match on name OR category.
	Search *string
}

func (f ProductFilter) Validate() error {
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return fmt.Errorf("minPrice is negative: %s", f.MinPrice)
	}

	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return fmt.Errorf("maxPrice is negative: %s", f.MaxPrice)
	}

	if f.MinPrice != nil && f.MaxPrice != nil && f.MaxPrice.LessThan(*f.MinPrice) {
		return fmt.Errorf("maxPrice %s is less than minPrice %s", f.MaxPrice, f.MinPrice)
	}

	return nil
}

// Matches is the pure predicate conjunction behind product listings.
func (f ProductFilter) Matches(p Product) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}

	if f.MinPrice != nil && p.Price.Amount.LessThan(*f.MinPrice) {
		return false
	}

	if f.MaxPrice != nil && p.Price.Amount.GreaterThan(*f.MaxPrice) {
		return false
	}

	if f.InStock != nil {
		if *f.InStock && p.Stock <= 0 {
			return false
		}
		if !*f.InStock && p.Stock != 0 {
			return false
		}
	}

	if f.Search != nil {
		needle := strings.ToLower(*f.Search)
		name := strings.ToLower(p.Name)
		category := strings.ToLower(p.Category)
		if !strings.Contains(name, needle) && !strings.Contains(category, needle) {
			return false
		}
	}

	return true
}

type ProductSortField string

const (
	ProductSortName     ProductSortField = "name"
	ProductSortPrice    ProductSortField = "price"
	ProductSortStock    ProductSortField = "stock"
	ProductSortCategory ProductSortField = "category"
)

type ProductSort struct {
	Field ProductSortField
	Desc  bool
}

// ToProductSort maps caller-supplied sort parameters to a whitelisted
// sort; unknown fields fall back to name ascending.
func ToProductSort(field, order string) ProductSort {
	s := ProductSort{Field: ProductSortName}

	switch ProductSortField(strings.ToLower(field)) {
	case ProductSortPrice:
		s.Field = ProductSortPrice
	case ProductSortStock:
		s.Field = ProductSortStock
	case ProductSortCategory:
		s.Field = ProductSortCategory
	case ProductSortName:
	}

	s.Desc = strings.EqualFold(order, "desc")
	return s
}
