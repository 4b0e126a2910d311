package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_page", err)
		return
	}

	pageSize, err := queryInt(c, "pageSize", 10)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_page", err)
		return
	}

	filter, err := productFilterFromQuery(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}

	sort := domain.ToProductSort(c.DefaultQuery("sortBy", "name"), c.DefaultQuery("sortOrder", "asc"))

	result, err := h.catalog.ListProducts(c.Request.Context(), filter, sort,
		domain.PageRequest{Page: page, PageSize: pageSize})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	if result.Items == nil {
		result.Items = []domain.Product{}
	}
	if result.Categories == nil {
		result.Categories = []string{}
	}
	RespondOK(c, result)
}

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}

	customers, err := h.catalog.ListCustomers(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	if customers == nil {
		customers = []domain.Customer{}
	}
	RespondOK(c, customers)
}

func productFilterFromQuery(c *gin.Context) (domain.ProductFilter, error) {
	var filter domain.ProductFilter

	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	if raw := c.Query("minPrice"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, fmt.Errorf("minPrice %q is not a number", raw)
		}
		filter.MinPrice = &minPrice
	}

	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, fmt.Errorf("maxPrice %q is not a number", raw)
		}
		filter.MaxPrice = &maxPrice
	}

	if raw := c.Query("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("inStock %q is not a boolean", raw)
		}
		filter.InStock = &inStock
	}

	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	return filter, nil
}
