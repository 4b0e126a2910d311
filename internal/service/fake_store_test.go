package service_test

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory implementation of the store ports with the
// same contracts as the Postgres adapter: a mutex-guarded conditional
// stock decrement and snapshot-rollback transactions.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	customers   map[uuid.UUID]domain.Customer
	customerIDs []uuid.UUID
	products    map[uuid.UUID]domain.Product
	orders      map[uuid.UUID]domain.Order

	spendingErr error
	salesErr    error
	searchErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: make(map[uuid.UUID]domain.Customer),
		products:  make(map[uuid.UUID]domain.Product),
		orders:    make(map[uuid.UUID]domain.Order),
	}
}

func (s *fakeStore) repos() port.Repositories {
	return port.Repositories{Customers: s, Products: s, Orders: s}
}

// RunInTx serializes transactions and restores a snapshot when fn
// fails, mirroring the rollback semantics of the real adapter.
func (s *fakeStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()

	if err := fn(ctx, s.repos()); err != nil {
		s.restore(snapshot)
		return err
	}

	return nil
}

type storeSnapshot struct {
	products map[uuid.UUID]domain.Product
	orders   map[uuid.UUID]domain.Order
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make(map[uuid.UUID]domain.Product, len(s.products))
	for id, p := range s.products {
		products[id] = p
	}

	orders := make(map[uuid.UUID]domain.Order, len(s.orders))
	for id, o := range s.orders {
		o.Items = append([]domain.OrderItem(nil), o.Items...)
		orders[id] = o
	}

	return storeSnapshot{products: products, orders: orders}
}

func (s *fakeStore) restore(snapshot storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snapshot.products
	s.orders = snapshot.orders
}

// CustomerRepository

func (s *fakeStore) GetCustomer(_ context.Context, customerID uuid.UUID) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[customerID]
	if !ok {
		return domain.Customer{}, fmt.Errorf("customer[%s]: %w", customerID, domain.ErrNotFound)
	}

	return customer, nil
}

func (s *fakeStore) ListCustomers(_ context.Context, limit int) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var customers []domain.Customer
	for _, id := range s.customerIDs {
		if len(customers) == limit {
			break
		}
		customers = append(customers, s.customers[id])
	}

	return customers, nil
}

func (s *fakeStore) InsertCustomer(_ context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers[customer.ID] = customer
	s.customerIDs = append(s.customerIDs, customer.ID)
	return nil
}

// ProductRepository

func (s *fakeStore) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return product, nil
}

func (s *fakeStore) SearchProducts(_ context.Context, filter domain.ProductFilter, sortBy domain.ProductSort, page domain.PageRequest) ([]domain.Product, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.matchingProducts(filter)
	sortProducts(matched, sortBy)

	start := page.Offset()
	if start >= len(matched) {
		return nil, nil
	}

	end := start + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}

func (s *fakeStore) CountProducts(_ context.Context, filter domain.ProductFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.matchingProducts(filter))), nil
}

func (s *fakeStore) DistinctCategories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	sort.Strings(categories)
	return categories, nil
}

func (s *fakeStore) DecrementStock(_ context.Context, productID uuid.UUID, quantity int) (domain.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return domain.Money{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	if product.Stock < quantity {
		return domain.Money{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrInsufficientStock)
	}

	product.Stock -= quantity
	s.products[productID] = product

	return product.Price, nil
}

func (s *fakeStore) InsertProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = product
	return nil
}

func (s *fakeStore) matchingProducts(filter domain.ProductFilter) []domain.Product {
	var matched []domain.Product
	for _, p := range s.products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func sortProducts(products []domain.Product, by domain.ProductSort) {
	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if by.Desc {
			a, b = b, a
		}

		switch by.Field {
		case domain.ProductSortPrice:
			if !a.Price.Amount.Equal(b.Price.Amount) {
				return a.Price.Amount.LessThan(b.Price.Amount)
			}
		case domain.ProductSortStock:
			if a.Stock != b.Stock {
				return a.Stock < b.Stock
			}
		case domain.ProductSortCategory:
			if a.Category != b.Category {
				return a.Category < b.Category
			}
		default:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}

		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

// OrderRepository

func (s *fakeStore) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	return order, nil
}

func (s *fakeStore) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New()
	if order.Status == "" {
		order.Status = domain.OrderStatusCompleted
	}
	s.orders[order.ID] = order

	return order.ID, nil
}

func (s *fakeStore) OrdersByCustomer(_ context.Context, customerID uuid.UUID, page domain.PageRequest) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.customerOrders(customerID)

	start := page.Offset()
	if start >= len(orders) {
		return nil, nil
	}

	end := start + page.Limit()
	if end > len(orders) {
		end = len(orders)
	}

	return orders[start:end], nil
}

func (s *fakeStore) CountOrdersByCustomer(_ context.Context, customerID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.customerOrders(customerID))), nil
}

func (s *fakeStore) CustomerSpending(_ context.Context, customerID uuid.UUID) (domain.CustomerSpending, error) {
	if s.spendingErr != nil {
		return domain.CustomerSpending{}, s.spendingErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := domain.CustomerSpending{CustomerID: customerID}

	orders := s.customerOrders(customerID)
	if len(orders) == 0 {
		return result, nil
	}

	for _, o := range orders {
		result.TotalSpent = result.TotalSpent.Add(o.TotalAmount)
		if result.LastOrderDate == nil || o.OrderDate.After(*result.LastOrderDate) {
			orderDate := o.OrderDate
			result.LastOrderDate = &orderDate
		}
	}

	result.AverageOrderValue = result.TotalSpent.Div(decimal.NewFromInt(int64(len(orders))))
	return result, nil
}

func (s *fakeStore) TopSellingProducts(_ context.Context, limit int) ([]domain.TopProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sold := make(map[uuid.UUID]int64)
	for _, o := range s.orders {
		for _, item := range o.Items {
			sold[item.ProductID] += int64(item.Quantity)
		}
	}

	var top []domain.TopProduct
	for productID, totalSold := range sold {
		product, ok := s.products[productID]
		if !ok {
			// inner-join semantics: vanished products drop out
			continue
		}
		top = append(top, domain.TopProduct{ProductID: productID, Name: product.Name, TotalSold: totalSold})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalSold != top[j].TotalSold {
			return top[i].TotalSold > top[j].TotalSold
		}
		return bytes.Compare(top[i].ProductID[:], top[j].ProductID[:]) < 0
	})

	if len(top) > limit {
		top = top[:limit]
	}

	return top, nil
}

func (s *fakeStore) SalesByCategory(_ context.Context, from, to time.Time) ([]domain.CategoryRevenue, error) {
	if s.salesErr != nil {
		return nil, s.salesErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	revenue := make(map[string]decimal.Decimal)
	for _, o := range s.orders {
		if o.OrderDate.Before(from) || o.OrderDate.After(to) {
			continue
		}

		for _, item := range o.Items {
			product, ok := s.products[item.ProductID]
			if !ok {
				continue
			}
			revenue[product.Category] = revenue[product.Category].Add(item.PriceAtPurchase.Mul(item.Quantity))
		}
	}

	var breakdown []domain.CategoryRevenue
	for category, total := range revenue {
		breakdown = append(breakdown, domain.CategoryRevenue{Category: category, Revenue: total})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Revenue.Equal(breakdown[j].Revenue) {
			return breakdown[i].Revenue.GreaterThan(breakdown[j].Revenue)
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown, nil
}

func (s *fakeStore) CountOrdersInRange(_ context.Context, from, to time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, o := range s.orders {
		if o.OrderDate.Before(from) || o.OrderDate.After(to) {
			continue
		}
		count++
	}

	return count, nil
}

func (s *fakeStore) customerOrders(customerID uuid.UUID) []domain.Order {
	var orders []domain.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.After(orders[j].OrderDate)
		}
		return bytes.Compare(orders[i].ID[:], orders[j].ID[:]) < 0
	})

	return orders
}
