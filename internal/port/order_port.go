package port

import (
	"context"
	"time"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/google/uuid"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)

	OrdersByCustomer(ctx context.Context, customerID uuid.UUID, page domain.PageRequest) ([]domain.Order, error)
	CountOrdersByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// CustomerSpending folds all of a customer's orders; an unknown
	// customer yields the zero-valued result, not an error.
	CustomerSpending(ctx context.Context, customerID uuid.UUID) (domain.CustomerSpending, error)

	// TopSellingProducts groups order lines by product, sums quantities
	// and inner-joins the catalog: lines whose product no longer exists
	// drop out. Ordered by total sold descending, product id ascending.
	TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)

	// SalesByCategory aggregates per-line revenue
	// (quantity * priceAtPurchase) by product category over the closed
	// range [from, to].
	SalesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryRevenue, error)

	CountOrdersInRange(ctx context.Context, from, to time.Time) (int64, error)
}
