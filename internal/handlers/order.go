package handlers

import (
	"fmt"
	"net/http"

	"github.com/commercelab/storefront/internal/domain"
	"github.com/commercelab/storefront/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderLine struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type placeOrderRequest struct {
	CustomerID string           `json:"customerId" binding:"required"`
	Products   []placeOrderLine `json:"products" binding:"required"`
}

// PlaceOrder responds 200 for both outcomes: the discriminated
// {success, message, order} body is the contract, not the HTTP status.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("customer id: %w", err))
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Products))
	for _, p := range req.Products {
		productID, err := uuid.Parse(p.ProductID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("product id: %w", err))
			return
		}
		lines = append(lines, domain.OrderLine{ProductID: productID, Quantity: p.Quantity})
	}

	result, err := h.orders.PlaceOrder(c.Request.Context(), customerID, lines)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	RespondOK(c, result)
}

func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("customer id: %w", err))
		return
	}

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

	result, err := h.orders.CustomerOrders(c.Request.Context(), customerID,
		domain.PageRequest{Page: page, PageSize: pageSize})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_error", err)
		return
	}

	if result.Items == nil {
		result.Items = []domain.Order{}
	}
	RespondOK(c, result)
}
