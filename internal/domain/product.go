package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product stock only ever decreases through order placement and must
// never be observed negative.
type Product struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Price    Money     `json:"price"`
	Stock    int       `json:"stock"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductPage struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"totalCount"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`

	// Categories is a catalog-wide facet over the unfiltered
	// collection, not scoped to the current filter.
	Categories []string `json:"categories"`
}
