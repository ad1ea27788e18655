package router

import (
	"pos_order_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up the order, search and stats routes.
func SetupOrderRoutes(api *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := api.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("/date/:startDate/:endDate", orderHandler.GetOrdersByDateRange)
		orderRoutes.GET("/:invoiceNumber", orderHandler.GetOrder)
		orderRoutes.PATCH("/:invoiceNumber", orderHandler.UpdateOrderStatus)
		orderRoutes.DELETE("/:invoiceNumber", orderHandler.DeleteOrder)
	}

	api.GET("/search", orderHandler.SearchOrders)
	api.GET("/stats", orderHandler.GetStats)
}

// SetupSalesRoutes sets up the reporting routes.
func SetupSalesRoutes(api *gin.RouterGroup, salesHandler *handlers.SalesHandler) {
	salesRoutes := api.Group("/sales")
	{
		salesRoutes.GET("/items", salesHandler.GetItemSales)
		salesRoutes.GET("/top-item", salesHandler.GetTopItem)
		salesRoutes.GET("/monthly", salesHandler.GetMonthlySales)
	}
}

// SetupMenuRoutes sets up the catalog and checkout routes.
func SetupMenuRoutes(api *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	api.GET("/menu", menuHandler.GetMenu)
	api.POST("/checkout", menuHandler.Checkout)
}
