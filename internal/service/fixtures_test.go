package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/commercelab/storefront/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

// cmpOpts makes go-cmp usable on structs carrying decimal amounts and
// currency units, which hide their state in unexported fields.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
	cmp.Comparer(func(x, y currency.Unit) bool { return x.String() == y.String() }),
	cmpopts.EquateEmpty(),
}

func money(amount float64) domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(amount),
		Currency: currency.USD,
	}
}

func fakeCustomer() domain.Customer {
	return domain.Customer{
		ID:    uuid.New(),
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Age:   gofakeit.Number(18, 80),
	}
}

func fakeProduct(category string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     gofakeit.ProductName(),
		Category: category,
		Price:    money(price),
		Stock:    stock,
	}
}

func seedCustomer(t *testing.T, store *fakeStore) domain.Customer {
	t.Helper()

	customer := fakeCustomer()
	require.NoError(t, store.InsertCustomer(context.Background(), customer))
	return customer
}

func seedProduct(t *testing.T, store *fakeStore, category string, price float64, stock int) domain.Product {
	t.Helper()

	product := fakeProduct(category, price, stock)
	require.NoError(t, store.InsertProduct(context.Background(), product))
	return product
}

func seedOrder(t *testing.T, store *fakeStore, customerID uuid.UUID, orderDate time.Time, items ...domain.OrderItem) domain.Order {
	t.Helper()

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PriceAtPurchase.Mul(item.Quantity))
	}

	order := domain.Order{
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: total,
		OrderDate:   orderDate,
		Status:      domain.OrderStatusCompleted,
	}

	orderID, err := store.InsertOrder(context.Background(), order)
	require.NoError(t, err)
	order.ID = orderID

	return order
}

func item(productID uuid.UUID, quantity int, price float64) domain.OrderItem {
	return domain.OrderItem{
		ProductID:       productID,
		Quantity:        quantity,
		PriceAtPurchase: money(price),
	}
}
