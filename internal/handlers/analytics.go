package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) GetCustomerSpending(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("customer id: %w", err))
		return
	}

	spending, err := h.analytics.CustomerSpending(c.Request.Context(), customerID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	RespondOK(c, spending)
}

func (h *AnalyticsHandler) GetTopProducts(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}

	products, err := h.analytics.TopSellingProducts(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	if products == nil {
		products = []domain.TopProduct{}
	}
	RespondOK(c, products)
}

func (h *AnalyticsHandler) GetSalesAnalytics(c *gin.Context) {
	from, err := parseDate(c.Query("startDate"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", fmt.Errorf("startDate: %w", err))
		return
	}

	to, err := parseDate(c.Query("endDate"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", fmt.Errorf("endDate: %w", err))
		return
	}

	analytics, err := h.analytics.SalesAnalytics(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			RespondError(c, http.StatusBadRequest, "invalid_range", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	RespondOK(c, analytics)
}
