package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-guest-service/services"
	"hotel-guest-service/utils"
)

// writeServiceError maps a service error onto the HTTP response. Unknown
// errors become a 500 whose details only go to the log.
func writeServiceError(ctx *gin.Context, log *zap.Logger, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		utils.JSONValidationError(ctx, verr.Error(), verr.Fields)
	case errors.Is(err, services.ErrGuestNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "Guest not found")
	case errors.Is(err, services.ErrEmailAlreadyExists):
		utils.JSONError(ctx, http.StatusConflict, "Email already exists")
	default:
		log.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err),
		)
		utils.JSONError(ctx, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
