package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerRepository struct {
	db DBTX
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{db: pool}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{db: tx}
}

const selectCustomerColumns = `id, name, email, age, location, gender, created_at`

func (r *customerRepository) GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	var c domain.Customer

	row := r.db.QueryRow(ctx,
		`SELECT `+selectCustomerColumns+` FROM customers WHERE id = $1`, customerID)

	if err := scanCustomer(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, fmt.Errorf("customer[%s]: %w", customerID, domain.ErrNotFound)
		}
		return c, fmt.Errorf("scanCustomer: %w", err)
	}

	return c, nil
}

func (r *customerRepository) ListCustomers(ctx context.Context, limit int) ([]domain.Customer, error) {
	if limit < 1 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+selectCustomerColumns+` FROM customers ORDER BY created_at, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("scanCustomer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) InsertCustomer(ctx context.Context, customer domain.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (id, name, email, age, location, gender)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		customer.ID, customer.Name, customer.Email, customer.Age, customer.Location, customer.Gender)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	return nil
}

func scanCustomer(row pgx.Row, c *domain.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.Age, &c.Location, &c.Gender, &c.CreatedAt)
}
