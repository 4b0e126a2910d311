package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/commercelab/storefront/internal/config"
	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/pkg/logger"
	"github.com/commercelab/storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Seeds the database from the exported JSON dumps (customers.json,
// products.json, orders.json). Source ids are remapped to fresh UUIDs;
// order lines arrive as a single-quoted stringified array and numeric
// fields as strings, both artifacts of the CSV export.

type rawCustomer struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Age      string `json:"age"`
	Location string `json:"location"`
	Gender   string `json:"gender"`
}

type rawProduct struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    string `json:"stock"`
}

type rawOrder struct {
	CustomerID  string `json:"customerId"`
	Products    string `json:"products"`
	TotalAmount string `json:"totalAmount"`
	OrderDate   string `json:"orderDate"`
	Status      string `json:"status"`
}

type rawOrderLine struct {
	ProductID       string `json:"productId"`
	Quantity        string `json:"quantity"`
	PriceAtPurchase string `json:"priceAtPurchase"`
}

var seedCurrency = currency.USD

func main() {
	dataDir := flag.String("data", "data", "directory holding customers.json, products.json, orders.json")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg, *dataDir); err != nil {
		log.Fatal("seed failed", "error", err)
	}

	log.Info("data imported successfully")
}

func run(ctx context.Context, cfg config.Config, dataDir string) error {
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}

	var (
		customers []rawCustomer
		products  []rawProduct
		orders    []rawOrder
	)

	if err := readJSON(filepath.Join(dataDir, "customers.json"), &customers); err != nil {
		return err
	}
	if err := readJSON(filepath.Join(dataDir, "products.json"), &products); err != nil {
		return err
	}
	if err := readJSON(filepath.Join(dataDir, "orders.json"), &orders); err != nil {
		return err
	}

	customerRepo := repository.NewCustomer(pool)
	productRepo := repository.NewProduct(pool)
	orderRepo := repository.NewOrder(pool)

	customerIDs := make(map[string]uuid.UUID, len(customers))
	for _, raw := range customers {
		customer, err := mapCustomer(raw)
		if err != nil {
			return fmt.Errorf("mapCustomer[%s]: %w", raw.ID, err)
		}

		if err := customerRepo.InsertCustomer(ctx, customer); err != nil {
			return fmt.Errorf("customerRepo.InsertCustomer: %w", err)
		}
		customerIDs[raw.ID] = customer.ID
	}

	productIDs := make(map[string]uuid.UUID, len(products))
	for _, raw := range products {
		product, err := mapProduct(raw)
		if err != nil {
			return fmt.Errorf("mapProduct[%s]: %w", raw.ID, err)
		}

		if err := productRepo.InsertProduct(ctx, product); err != nil {
			return fmt.Errorf("productRepo.InsertProduct: %w", err)
		}
		productIDs[raw.ID] = product.ID
	}

	for i, raw := range orders {
		order, err := mapOrder(raw, customerIDs, productIDs)
		if err != nil {
			return fmt.Errorf("mapOrder[%d]: %w", i, err)
		}

		if _, err := orderRepo.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("orderRepo.InsertOrder: %w", err)
		}
	}

	return nil
}

func readJSON(path string, target any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("json.Unmarshal[%s]: %w", path, err)
	}

	return nil
}

func mapCustomer(raw rawCustomer) (domain.Customer, error) {
	var c domain.Customer

	age, err := strconv.Atoi(raw.Age)
	if err != nil {
		return c, fmt.Errorf("age[%s]: %w", raw.Age, err)
	}

	c = domain.Customer{
		ID:    uuid.New(),
		Name:  raw.Name,
		Email: raw.Email,
		Age:   age,
	}

	if raw.Location != "" {
		c.Location = &raw.Location
	}
	if raw.Gender != "" {
		c.Gender = &raw.Gender
	}

	return c, nil
}

func mapProduct(raw rawProduct) (domain.Product, error) {
	var p domain.Product

	price, err := decimal.NewFromString(raw.Price)
	if err != nil {
		return p, fmt.Errorf("price[%s]: %w", raw.Price, err)
	}

	stock, err := strconv.Atoi(raw.Stock)
	if err != nil {
		return p, fmt.Errorf("stock[%s]: %w", raw.Stock, err)
	}

	return domain.Product{
		ID:       uuid.New(),
		Name:     raw.Name,
		Category: raw.Category,
		Price:    domain.Money{Amount: price, Currency: seedCurrency},
		Stock:    stock,
	}, nil
}

func mapOrder(raw rawOrder, customerIDs, productIDs map[string]uuid.UUID) (domain.Order, error) {
	var o domain.Order

	customerID, ok := customerIDs[raw.CustomerID]
	if !ok {
		return o, fmt.Errorf("unknown customer id: %s", raw.CustomerID)
	}

	// Order lines were exported as a single-quoted JSON string.
	var rawLines []rawOrderLine
	normalized := strings.ReplaceAll(raw.Products, "'", `"`)
	if err := json.Unmarshal([]byte(normalized), &rawLines); err != nil {
		return o, fmt.Errorf("json.Unmarshal[products]: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(rawLines))
	for _, line := range rawLines {
		productID, ok := productIDs[line.ProductID]
		if !ok {
			return o, fmt.Errorf("unknown product id: %s", line.ProductID)
		}

		quantity, err := strconv.Atoi(line.Quantity)
		if err != nil {
			return o, fmt.Errorf("quantity[%s]: %w", line.Quantity, err)
		}

		price, err := decimal.NewFromString(line.PriceAtPurchase)
		if err != nil {
			return o, fmt.Errorf("priceAtPurchase[%s]: %w", line.PriceAtPurchase, err)
		}

		items = append(items, domain.OrderItem{
			ProductID:       productID,
			Quantity:        quantity,
			PriceAtPurchase: domain.Money{Amount: price, Currency: seedCurrency},
		})
	}

	totalAmount, err := decimal.NewFromString(raw.TotalAmount)
	if err != nil {
		return o, fmt.Errorf("totalAmount[%s]: %w", raw.TotalAmount, err)
	}

	orderDate, err := parseOrderDate(raw.OrderDate)
	if err != nil {
		return o, fmt.Errorf("parseOrderDate: %w", err)
	}

	status, err := domain.ToOrderStatus(raw.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", raw.Status, err)
	}

	return domain.Order{
		CustomerID:  customerID,
		Items:       items,
		TotalAmount: totalAmount,
		OrderDate:   orderDate,
		Status:      status,
	}, nil
}

func parseOrderDate(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %s", raw)
}
