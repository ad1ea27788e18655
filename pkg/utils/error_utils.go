package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the standardized error body: {"success": false, "error": "...", "code": "..."}.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"error"`
}

// Error makes APIError usable as a plain error as well.
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// RespondWithError sends a standardized JSON error response
func RespondWithError(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.StatusCode, gin.H{
		"success": false,
		"error":   err.Message,
		"code":    err.Code,
	})
}

// RespondOK writes a 200 response; "success": true is always added to the body.
func RespondOK(c *gin.Context, body gin.H) {
	respond(c, http.StatusOK, body)
}

// RespondCreated writes a 201 response with "success": true.
func RespondCreated(c *gin.Context, body gin.H) {
	respond(c, http.StatusCreated, body)
}

func respond(c *gin.Context, status int, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(status, body)
}

// Common Error Constants
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
)

// RespondValidationFailed is a shortcut for 400 validation responses.
func RespondValidationFailed(c *gin.Context, message string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, message))
}
