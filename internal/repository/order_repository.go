package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	db DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	order, err := withTx(ctx, r.db, func(q DBTX) (domain.Order, error) {
		row := q.QueryRow(ctx,
			`SELECT id, customer_id, total_amount, order_date, status FROM orders WHERE id = $1`, orderID)

		order, err := scanOrder(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
			}
			return o, fmt.Errorf("scanOrder: %w", err)
		}

		itemsByOrder, err := orderItems(ctx, q, []uuid.UUID{orderID})
		if err != nil {
			return o, fmt.Errorf("orderItems: %w", err)
		}
		order.Items = itemsByOrder[orderID]

		return order, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if len(order.Items) == 0 {
		return uuid.Nil, errors.New("no items in order")
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusCompleted
	}

	orderID, err := withTx(ctx, r.db, func(q DBTX) (uuid.UUID, error) {
		var orderID uuid.UUID

		err := q.QueryRow(ctx,
			`INSERT INTO orders (customer_id, total_amount, order_date, status)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			order.CustomerID, order.TotalAmount, order.OrderDate, string(order.Status)).Scan(&orderID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("row.Scan: %w", err)
		}

		// TODO: batch with pgx.Batch once line counts grow
		for _, item := range order.Items {
			_, err := q.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, price_amount, price_currency)
				 VALUES ($1, $2, $3, $4, $5)`,
				orderID, item.ProductID, item.Quantity,
				item.PriceAtPurchase.Amount, item.PriceAtPurchase.Currency.String())
			if err != nil {
				return uuid.Nil, fmt.Errorf("q.Exec: %w", err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) OrdersByCustomer(ctx context.Context, customerID uuid.UUID, page domain.PageRequest) ([]domain.Order, error) {
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("page.Validate: %w", err)
	}

	return withTx(ctx, r.db, func(q DBTX) ([]domain.Order, error) {
		rows, err := q.Query(ctx,
			`SELECT id, customer_id, total_amount, order_date, status
			 FROM orders
			 WHERE customer_id = $1
			 ORDER BY order_date DESC, id
			 OFFSET $2 LIMIT $3`,
			customerID, page.Offset(), page.Limit())
		if err != nil {
			return nil, fmt.Errorf("q.Query: %w", err)
		}
		defer rows.Close()

		var orders []domain.Order
		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return nil, fmt.Errorf("scanOrder: %w", err)
			}
			orders = append(orders, order)
		}

		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows.Err: %w", err)
		}

		if len(orders) == 0 {
			return nil, nil
		}

		orderIDs := lo.Map(orders, func(o domain.Order, _ int) uuid.UUID { return o.ID })

		itemsByOrder, err := orderItems(ctx, q, orderIDs)
		if err != nil {
			return nil, fmt.Errorf("orderItems: %w", err)
		}

		for i := range orders {
			orders[i].Items = itemsByOrder[orders[i].ID]
		}

		return orders, nil
	})
}

func (r *orderRepository) CountOrdersByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return count, nil
}

// CustomerSpending folds every order of the customer, no status
// filter. The aggregate row always exists; a customer without orders
// comes back all zeroes with a NULL last order date.
func (r *orderRepository) CustomerSpending(ctx context.Context, customerID uuid.UUID) (domain.CustomerSpending, error) {
	result := domain.CustomerSpending{CustomerID: customerID}

	var (
		totalSpent decimal.Decimal
		avgValue   decimal.Decimal
		lastOrder  *time.Time
	)

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0),
		        COALESCE(AVG(total_amount), 0),
		        MAX(order_date)
		 FROM orders
		 WHERE customer_id = $1`, customerID).Scan(&totalSpent, &avgValue, &lastOrder)
	if err != nil {
		return result, fmt.Errorf("row.Scan: %w", err)
	}

	result.TotalSpent = totalSpent
	result.AverageOrderValue = avgValue
	result.LastOrderDate = lastOrder

	return result, nil
}

// TopSellingProducts unwinds order lines, groups by product and joins
// the catalog. The inner join drops lines whose product was removed.
// product_id breaks quantity ties so the ranking is deterministic.
func (r *orderRepository) TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if limit < 1 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT oi.product_id, p.name, SUM(oi.quantity) AS total_sold
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 GROUP BY oi.product_id, p.name
		 ORDER BY total_sold DESC, oi.product_id ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.TopProduct
	for rows.Next() {
		var tp domain.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.TotalSold); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		products = append(products, tp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

// SalesByCategory computes per-line revenue from the snapshotted
// purchase price, never the live catalog price.
func (r *orderRepository) SalesByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryRevenue, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.category, SUM(oi.quantity * oi.price_amount) AS revenue
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 JOIN products p ON p.id = oi.product_id
		 WHERE o.order_date >= $1 AND o.order_date <= $2
		 GROUP BY p.category
		 ORDER BY revenue DESC, p.category ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var breakdown []domain.CategoryRevenue
	for rows.Next() {
		var cr domain.CategoryRevenue
		if err := rows.Scan(&cr.Category, &cr.Revenue); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		breakdown = append(breakdown, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return breakdown, nil
}

func (r *orderRepository) CountOrdersInRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE order_date >= $1 AND order_date <= $2`,
		from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return count, nil
}

func orderItems(ctx context.Context, q DBTX, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	rows, err := q.Query(ctx,
		`SELECT order_id, product_id, quantity, price_amount, price_currency
		 FROM order_items
		 WHERE order_id = ANY($1)`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]domain.OrderItem)
	for rows.Next() {
		var (
			orderID       uuid.UUID
			item          domain.OrderItem
			priceAmount   decimal.Decimal
			priceCurrency string
		)

		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &priceAmount, &priceCurrency); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(priceCurrency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", priceCurrency, err)
		}

		item.PriceAtPurchase = domain.Money{Amount: priceAmount, Currency: parsedCurrency}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return itemsByOrder, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o      domain.Order
		status string
	)

	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.OrderDate, &status); err != nil {
		return o, err
	}

	parsedStatus, err := domain.ToOrderStatus(status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}
	o.Status = parsedStatus

	return o, nil
}
