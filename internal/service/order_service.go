package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	// PlaceOrder is the only write path. Validation failures come back
	// as OrderResult{Success: false}; the error return is reserved for
	// store failures.
	PlaceOrder(ctx context.Context, customerID uuid.UUID, lines []domain.OrderLine) (domain.OrderResult, error)

	CustomerOrders(ctx context.Context, customerID uuid.UUID, page domain.PageRequest) (domain.OrderPage, error)
}

type orderService struct {
	tx     port.TxRunner
	orders port.OrderRepository
}

func NewOrder(tx port.TxRunner, orders port.OrderRepository) OrderService {
	return &orderService{tx: tx, orders: orders}
}

// errOrderAborted forces the transaction to roll back while the
// failure reason travels in the captured OrderResult.
var errOrderAborted = errors.New("order aborted")

// PlaceOrder runs validate, decrement and insert in one transaction:
// an abort on any line rolls back every decrement made for earlier
// lines, so stock is never consumed without a persisted order. Lines
// are processed in input order and see each other's decrements, which
// makes duplicate-product lines draw from cumulative stock.
func (s *orderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, lines []domain.OrderLine) (domain.OrderResult, error) {
	if len(lines) == 0 {
		return failedOrder("Order must contain at least one product"), nil
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return failedOrder(fmt.Sprintf("Quantity must be at least 1 for product: %s", line.ProductID)), nil
		}
	}

	var result domain.OrderResult

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		if _, err := repos.Customers.GetCustomer(ctx, customerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				result = failedOrder("Customer not found")
				return errOrderAborted
			}
			return fmt.Errorf("repos.Customers.GetCustomer: %w", err)
		}

		items := make([]domain.OrderItem, 0, len(lines))
		totalAmount := decimal.Zero

		for _, line := range lines {
			price, err := repos.Products.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrNotFound):
					result = failedOrder(fmt.Sprintf("Product not found: %s", line.ProductID))
					return errOrderAborted
				case errors.Is(err, domain.ErrInsufficientStock):
					result = failedOrder(fmt.Sprintf("Insufficient stock for product: %s", line.ProductID))
					return errOrderAborted
				default:
					return fmt.Errorf("repos.Products.DecrementStock: %w", err)
				}
			}

			items = append(items, domain.OrderItem{
				ProductID:       line.ProductID,
				Quantity:        line.Quantity,
				PriceAtPurchase: price,
			})
			totalAmount = totalAmount.Add(price.Mul(line.Quantity))
		}

		order := domain.Order{
			CustomerID:  customerID,
			Items:       items,
			TotalAmount: totalAmount,
			OrderDate:   time.Now().UTC(),
			Status:      domain.OrderStatusCompleted,
		}

		orderID, err := repos.Orders.InsertOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("repos.Orders.InsertOrder: %w", err)
		}
		order.ID = orderID

		result = domain.OrderResult{
			Success: true,
			Message: "Order placed successfully",
			Order:   &order,
		}
		return nil
	})
	if err != nil && !errors.Is(err, errOrderAborted) {
		return domain.OrderResult{}, fmt.Errorf("tx.RunInTx: %w", err)
	}

	return result, nil
}

func (s *orderService) CustomerOrders(ctx context.Context, customerID uuid.UUID, page domain.PageRequest) (domain.OrderPage, error) {
	result := domain.OrderPage{
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	if page.Validate() != nil {
		return result, nil
	}

	orders, err := s.orders.OrdersByCustomer(ctx, customerID, page)
	if err != nil {
		return result, fmt.Errorf("orders.OrdersByCustomer: %w", err)
	}

	totalCount, err := s.orders.CountOrdersByCustomer(ctx, customerID)
	if err != nil {
		return result, fmt.Errorf("orders.CountOrdersByCustomer: %w", err)
	}

	result.Items = orders
	result.TotalCount = totalCount
	result.TotalPages = domain.TotalPages(totalCount, page.PageSize)

	return result, nil
}

func failedOrder(message string) domain.OrderResult {
	return domain.OrderResult{
		Success: false,
		Message: message,
		Order:   nil,
	}
}
