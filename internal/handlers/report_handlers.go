package handlers

import (
	"pos_order_backend/internal/models"
	"pos_order_backend/internal/services"
	"pos_order_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SalesHandler serves the sales rollups.
type SalesHandler struct {
	salesService services.SalesService
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(ss services.SalesService) *SalesHandler {
	return &SalesHandler{salesService: ss}
}

func parseSalesQuery(c *gin.Context) models.SalesQuery {
	return models.SalesQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

// GetItemSales handles GET /api/sales/items.
func (h *SalesHandler) GetItemSales(c *gin.Context) {
	rows, err := h.salesService.GetItemSales(c.Request.Context(), parseSalesQuery(c))
	if err != nil {
		respondServiceError(c, err, "GetItemSales")
		return
	}
	utils.RespondOK(c, gin.H{"salesData": rows})
}

// GetTopItem handles GET /api/sales/top-item. topItem is null when nothing sold.
func (h *SalesHandler) GetTopItem(c *gin.Context) {
	top, err := h.salesService.GetTopItem(c.Request.Context(), parseSalesQuery(c))
	if err != nil {
		respondServiceError(c, err, "GetTopItem")
		return
	}
	utils.RespondOK(c, gin.H{"topItem": top})
}

// GetMonthlySales handles GET /api/sales/monthly.
func (h *SalesHandler) GetMonthlySales(c *gin.Context) {
	months, err := h.salesService.GetMonthlySales(c.Request.Context(), parseSalesQuery(c))
	if err != nil {
		respondServiceError(c, err, "GetMonthlySales")
		return
	}
	utils.RespondOK(c, gin.H{"monthlySales": months})
}
