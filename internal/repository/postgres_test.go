package repository_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/commercelab/storefront/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

func fakeCustomer() domain.Customer {
	return domain.Customer{
		ID:       uuid.New(),
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Age:      gofakeit.Number(18, 80),
		Location: nil,
		Gender:   nil,
	}
}

func fakeProduct(category string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     gofakeit.ProductName(),
		Category: category,
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(price),
			Currency: currency.USD,
		},
		Stock: stock,
	}
}

func orderWith(customerID uuid.UUID, orderDate time.Time, items ...domain.OrderItem) domain.Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PriceAtPurchase.Mul(item.Quantity))
	}

	return domain.Order{
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: total,
		OrderDate:   orderDate,
		Status:      domain.OrderStatusCompleted,
	}
}

func orderItem(productID uuid.UUID, quantity int, price float64) domain.OrderItem {
	return domain.OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		PriceAtPurchase: domain.Money{
			Amount:   decimal.NewFromFloat(price),
			Currency: currency.USD,
		},
	}
}

func assertMoneyEqual(t *testing.T, expected, actual domain.Money) {
	t.Helper()

	require.True(t, expected.Amount.Equal(actual.Amount), "amount: want %s, got %s", expected.Amount, actual.Amount)
	require.Equal(t, expected.Currency.String(), actual.Currency.String())
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
		cmp.Comparer(func(x, y currency.Unit) bool { return x.String() == y.String() }),
		cmp.Comparer(func(x, y time.Time) bool { return x.Equal(y) }),
		// item order within an order carries no meaning
		cmpopts.SortSlices(func(a, b domain.OrderItem) bool {
			if c := bytes.Compare(a.ProductID[:], b.ProductID[:]); c != 0 {
				return c < 0
			}
			return a.Quantity < b.Quantity
		}),
		cmpopts.EquateEmpty(),
	}

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
