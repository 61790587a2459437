package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-guest-service/models"
)

type ErrorResponse struct {
	Status  string              `json:"status"`
	Code    int                 `json:"code"`
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Status:  "error",
		Code:    code,
		Error:   http.StatusText(code),
		Message: message,
	})
}

// JSONValidationError answers 400 with the rejected fields.
func JSONValidationError(c *gin.Context, message string, fields []models.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
		Message: message,
		Errors:  fields,
	})
}
