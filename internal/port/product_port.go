package port

import (
	"context"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/google/uuid"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	SearchProducts(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) ([]domain.Product, error)
	CountProducts(ctx context.Context, filter domain.ProductFilter) (int64, error)

	// DistinctCategories spans the unfiltered catalog.
	DistinctCategories(ctx context.Context) ([]string, error)

	// DecrementStock atomically checks and decrements: it must never
	// leave stock negative and must serialize concurrent callers on the
	// same product. Returns the current price, the snapshot source for
	// order lines. Fails with domain.ErrNotFound or
	// domain.ErrInsufficientStock.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (domain.Money, error)

	InsertProduct(ctx context.Context, product domain.Product) error
}
