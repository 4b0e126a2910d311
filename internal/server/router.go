package server

import (
	"github.com/commercelab/storefront/internal/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AnalyticsHandler *handlers.AnalyticsHandler
	CatalogHandler   *handlers.CatalogHandler
	OrderHandler     *handlers.OrderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/customers", cfg.CatalogHandler.ListCustomers)
		api.GET("/customers/:id/spending", cfg.AnalyticsHandler.GetCustomerSpending)
		api.GET("/customers/:id/orders", cfg.OrderHandler.ListCustomerOrders)

		api.GET("/products", cfg.CatalogHandler.ListProducts)
		api.GET("/products/top", cfg.AnalyticsHandler.GetTopProducts)

		api.GET("/analytics/sales", cfg.AnalyticsHandler.GetSalesAnalytics)

		api.POST("/orders", cfg.OrderHandler.PlaceOrder)
	}

	return router
}
