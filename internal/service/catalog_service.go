package service

import (
	"context"
	"fmt"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/port"
)

type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) (domain.ProductPage, error)
	ListCustomers(ctx context.Context, limit int) ([]domain.Customer, error)
}

type catalogService struct {
	products  port.ProductRepository
	customers port.CustomerRepository
}

func NewCatalog(products port.ProductRepository, customers port.CustomerRepository) CatalogService {
	return &catalogService{products: products, customers: customers}
}

// ListProducts pairs the filtered page with the unpaginated match
// count and a catalog-wide category facet. Invalid pagination or
// filter bounds are recovered as an empty page, per the query-side
// error contract.
func (s *catalogService) ListProducts(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) (domain.ProductPage, error) {
	result := domain.ProductPage{
		Page:     page.Page,
		PageSize: page.PageSize,
	}

	if page.Validate() != nil || filter.Validate() != nil {
		return result, nil
	}

	products, err := s.products.SearchProducts(ctx, filter, sort, page)
	if err != nil {
		return result, fmt.Errorf("products.SearchProducts: %w", err)
	}

	totalCount, err := s.products.CountProducts(ctx, filter)
	if err != nil {
		return result, fmt.Errorf("products.CountProducts: %w", err)
	}

	categories, err := s.products.DistinctCategories(ctx)
	if err != nil {
		return result, fmt.Errorf("products.DistinctCategories: %w", err)
	}

	result.Items = products
	result.TotalCount = totalCount
	result.TotalPages = domain.TotalPages(totalCount, page.PageSize)
	result.Categories = categories

	return result, nil
}

func (s *catalogService) ListCustomers(ctx context.Context, limit int) ([]domain.Customer, error) {
	if limit < 1 {
		return nil, nil
	}

	customers, err := s.customers.ListCustomers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("customers.ListCustomers: %w", err)
	}

	return customers, nil
}
