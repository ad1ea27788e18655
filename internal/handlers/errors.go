package handlers

import (
	"errors"
	"net/http"

	"pos_order_backend/internal/services"
	"pos_order_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto 400/404/500 and logs them.
// The underlying message is passed through to the caller.
func respondServiceError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.LogDebug(op+": not found", map[string]interface{}{"error": err.Error()})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found"))
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidOrderStatus),
		errors.Is(err, services.ErrInvalidDate):
		utils.LogDebug(op+": rejected input", map[string]interface{}{"error": err.Error()})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
	default:
		utils.LogError(err, op+": internal error", map[string]interface{}{"request_id": c.GetString(utils.RequestIDKey)})
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, err.Error()))
	}
}
