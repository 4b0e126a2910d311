package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is immutable once created: there is no update or cancel path.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customerId"`
	Items       []OrderItem     `json:"products"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
	Status      OrderStatus     `json:"status"`
}

// OrderItem holds a weak reference to its product. PriceAtPurchase is
// a snapshot taken at transaction time; later catalog price changes
// must never alter historical totals.
type OrderItem struct {
	ProductID       uuid.UUID `json:"productId"`
	Quantity        int       `json:"quantity"`
	PriceAtPurchase Money     `json:"priceAtPurchase"`
}

// OrderLine is a requested line of a new order, before validation.
type OrderLine struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type OrderPage struct {
	Items      []Order `json:"items"`
	TotalCount int64   `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// OrderResult is the discriminated outcome of order placement.
// Validation failures land here with Success=false; they are not
// errors.
type OrderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   *Order `json:"order"`
}
