package handlers

import (
	"pos_order_backend/internal/services"
	"pos_order_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the catalog and server-side checkout.
type MenuHandler struct {
	checkoutService services.CheckoutService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(cs services.CheckoutService) *MenuHandler {
	return &MenuHandler{checkoutService: cs}
}

// GetMenu lists the catalog; ?category= and ?query= narrow it down.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu := h.checkoutService.Menu()
	utils.RespondOK(c, gin.H{
		"categories": menu.Categories(),
		"items":      menu.Filter(c.Query("category"), c.Query("query")),
	})
}

// Checkout prices the posted cart from the menu and places the order.
func (h *MenuHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Checkout: failed to bind JSON", map[string]interface{}{"error": err.Error()})
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Checkout")
		return
	}
	utils.RespondCreated(c, gin.H{"message": "Order created successfully", "order": order})
}
