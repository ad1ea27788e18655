package handlers

import (
	"pos_order_backend/internal/models"
	"pos_order_backend/internal/services"
	"pos_order_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// GetOrders lists every order, newest first.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetOrders")
		return
	}
	respondOrders(c, orders)
}

// GetOrder fetches one order by invoice number.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByInvoice(c.Request.Context(), c.Param("invoiceNumber"))
	if err != nil {
		respondServiceError(c, err, "GetOrder")
		return
	}
	utils.RespondOK(c, gin.H{"order": order})
}

// CreateOrder persists an order built by the client.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("CreateOrder: failed to bind JSON", map[string]interface{}{"error": err.Error()})
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.ToModel())
	if err != nil {
		respondServiceError(c, err, "CreateOrder")
		return
	}
	utils.RespondCreated(c, gin.H{"message": "Order created successfully", "order": order})
}

// UpdateOrderStatus replaces the status of an order.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	invoiceNumber := c.Param("invoiceNumber")

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("UpdateOrderStatus: failed to bind JSON", map[string]interface{}{"invoice_number": invoiceNumber, "error": err.Error()})
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), invoiceNumber, req)
	if err != nil {
		respondServiceError(c, err, "UpdateOrderStatus")
		return
	}
	utils.RespondOK(c, gin.H{"message": "Order updated successfully", "order": order})
}

// DeleteOrder removes an order permanently.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("invoiceNumber")); err != nil {
		respondServiceError(c, err, "DeleteOrder")
		return
	}
	utils.RespondOK(c, gin.H{"message": "Order deleted successfully"})
}

// GetOrdersByDateRange lists orders created between two calendar dates, both inclusive.
func (h *OrderHandler) GetOrdersByDateRange(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByDateRange(c.Request.Context(), c.Param("startDate"), c.Param("endDate"))
	if err != nil {
		respondServiceError(c, err, "GetOrdersByDateRange")
		return
	}
	respondOrders(c, orders)
}

// SearchOrders matches ?query= against invoice, customer name/phone and room.
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	orders, err := h.orderService.SearchOrders(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondServiceError(c, err, "SearchOrders")
		return
	}
	respondOrders(c, orders)
}

// GetStats returns order counts and revenue, overall and for today.
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetStats")
		return
	}
	utils.RespondOK(c, gin.H{"stats": stats})
}

func respondOrders(c *gin.Context, orders []models.Order) {
	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondOK(c, gin.H{"count": len(orders), "orders": orders})
}
