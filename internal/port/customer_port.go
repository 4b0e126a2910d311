package port

import (
	"context"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/google/uuid"
)

type CustomerRepository interface {
	GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error)
	ListCustomers(ctx context.Context, limit int) ([]domain.Customer, error)

	InsertCustomer(ctx context.Context, customer domain.Customer) error
}
