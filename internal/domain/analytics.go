package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerSpending is a commutative reduction over one customer's
// orders. A customer with no orders yields the zero value with a nil
// LastOrderDate; that is an empty state, not a failure.
type CustomerSpending struct {
	CustomerID        uuid.UUID       `json:"customerId"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	LastOrderDate     *time.Time      `json:"lastOrderDate"`
}

type TopProduct struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	TotalSold int64     `json:"totalSold"`
}

type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesAnalytics reports a closed date range. TotalRevenue always
// equals the sum over CategoryBreakdown.
type SalesAnalytics struct {
	TotalRevenue      decimal.Decimal   `json:"totalRevenue"`
	CompletedOrders   int64             `json:"completedOrders"`
	CategoryBreakdown []CategoryRevenue `json:"categoryBreakdown"`
}
