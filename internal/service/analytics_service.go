package service

import (
	"context"
	"fmt"
	"time"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnalyticsService answers the read-only roll-up queries. All of them
// are side-effect-free and aggregate over every order regardless of
// status: one policy everywhere, so spending, rankings and revenue
// always agree with each other.
type AnalyticsService interface {
	CustomerSpending(ctx context.Context, customerID uuid.UUID) (domain.CustomerSpending, error)
	TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
	SalesAnalytics(ctx context.Context, from, to time.Time) (domain.SalesAnalytics, error)
}

type analyticsService struct {
	orders port.OrderRepository
}

func NewAnalytics(orders port.OrderRepository) AnalyticsService {
	return &analyticsService{orders: orders}
}

// CustomerSpending treats an unknown customer as an empty state: the
// zero-valued result comes back, never an error.
func (s *analyticsService) CustomerSpending(ctx context.Context, customerID uuid.UUID) (domain.CustomerSpending, error) {
	spending, err := s.orders.CustomerSpending(ctx, customerID)
	if err != nil {
		return domain.CustomerSpending{}, fmt.Errorf("orders.CustomerSpending: %w", err)
	}

	return spending, nil
}

// TopSellingProducts with limit <= 0 yields no results, not an error.
func (s *analyticsService) TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if limit < 1 {
		return nil, nil
	}

	products, err := s.orders.TopSellingProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("orders.TopSellingProducts: %w", err)
	}

	return products, nil
}

// SalesAnalytics reports the closed range [from, to]. A reversed range
// is a caller mistake and fails with domain.ErrInvalidRange.
// TotalRevenue is derived from the category breakdown, so the two can
// never drift apart.
func (s *analyticsService) SalesAnalytics(ctx context.Context, from, to time.Time) (domain.SalesAnalytics, error) {
	var result domain.SalesAnalytics

	if to.Before(from) {
		return result, fmt.Errorf("range [%s, %s]: %w",
			from.Format(time.RFC3339), to.Format(time.RFC3339), domain.ErrInvalidRange)
	}

	breakdown, err := s.orders.SalesByCategory(ctx, from, to)
	if err != nil {
		return result, fmt.Errorf("orders.SalesByCategory: %w", err)
	}

	orderCount, err := s.orders.CountOrdersInRange(ctx, from, to)
	if err != nil {
		return result, fmt.Errorf("orders.CountOrdersInRange: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, cr := range breakdown {
		totalRevenue = totalRevenue.Add(cr.Revenue)
	}

	return domain.SalesAnalytics{
		TotalRevenue:      totalRevenue,
		CompletedOrders:   orderCount,
		CategoryBreakdown: breakdown,
	}, nil
}
