package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type productRepository struct {
	db DBTX
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{db: tx}
}

const selectProductColumns = `id, name, category, price_amount, price_currency, stock, created_at, updated_at`

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	row := r.db.QueryRow(ctx,
		`SELECT `+selectProductColumns+` FROM products WHERE id = $1`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		return p, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *productRepository) SearchProducts(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) ([]domain.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("page.Validate: %w", err)
	}

	where, args := buildProductWhere(filter)

	query := `SELECT ` + selectProductColumns + ` FROM products` + where +
		` ORDER BY ` + productOrderBy(sort) +
		fmt.Sprintf(` OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
	args = append(args, page.Offset(), page.Limit())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *productRepository) CountProducts(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	if err := filter.Validate(); err != nil {
		return 0, fmt.Errorf("filter.Validate: %w", err)
	}

	where, args := buildProductWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return count, nil
}

func (r *productRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return categories, nil
}

// DecrementStock is a conditional update: the row lock taken by UPDATE
// serializes concurrent callers, and the stock >= quantity guard means
// two racing orders can never both win the last unit.
func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (domain.Money, error) {
	var m domain.Money

	if quantity < 1 {
		return m, fmt.Errorf("quantity must be >= 1, got %d", quantity)
	}

	var (
		priceAmount   decimal.Decimal
		priceCurrency string
	)

	err := r.db.QueryRow(ctx,
		`UPDATE products
		 SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2
		 RETURNING price_amount, price_currency`,
		productID, quantity).Scan(&priceAmount, &priceCurrency)
	if err == nil {
		parsedCurrency, err := currency.ParseISO(priceCurrency)
		if err != nil {
			return m, fmt.Errorf("currency[%s] is not valid: %w", priceCurrency, err)
		}
		return domain.Money{Amount: priceAmount, Currency: parsedCurrency}, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return m, fmt.Errorf("row.Scan: %w", err)
	}

	// Zero rows: either the product is missing or stock is short.
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return m, fmt.Errorf("row.Scan: %w", err)
	}

	if !exists {
		return m, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return m, fmt.Errorf("product[%s]: %w", productID, domain.ErrInsufficientStock)
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, name, category, price_amount, price_currency, stock)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		product.ID, product.Name, product.Category,
		product.Price.Amount, product.Price.Currency.String(), product.Stock)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func buildProductWhere(filter domain.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price_amount >= $%d", len(args)))
	}

	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price_amount <= $%d", len(args)))
	}

	if filter.InStock != nil {
		if *filter.InStock {
			conds = append(conds, "stock > 0")
		} else {
			conds = append(conds, "stock = 0")
		}
	}

	if filter.Search != nil {
		args = append(args, "%"+escapeLike(*filter.Search)+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

var productSortColumns = map[domain.ProductSortField]string{
	domain.ProductSortName:     "name",
	domain.ProductSortPrice:    "price_amount",
	domain.ProductSortStock:    "stock",
	domain.ProductSortCategory: "category",
}

func productOrderBy(sort domain.ProductSort) string {
	column, ok := productSortColumns[sort.Field]
	if !ok {
		column = "name"
	}

	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}

	// id keeps pages stable when the sort column has duplicates
	return fmt.Sprintf("%s %s, id ASC", column, direction)
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p             domain.Product
		priceAmount   decimal.Decimal
		priceCurrency string
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Category, &priceAmount, &priceCurrency,
		&p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, err
	}

	parsedCurrency, err := currency.ParseISO(priceCurrency)
	if err != nil {
		return p, fmt.Errorf("currency[%s] is not valid: %w", priceCurrency, err)
	}

	p.Price = domain.Money{Amount: priceAmount, Currency: parsedCurrency}
	return p, nil
}
