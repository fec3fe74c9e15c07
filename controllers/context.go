package controllers

import (
	"errors"
	"net/http"

	"agendabiz-backend/config"
	"agendabiz-backend/services"
	"agendabiz-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// businessIDFromContext resolves the tenant id set by the auth middleware.
// Writes the error response itself; callers just return on !ok.
func businessIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	businessID, exists := c.Get("businessId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return uuid.Nil, false
	}

	raw, ok := businessID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return uuid.Nil, false
	}

	businessUUID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return uuid.Nil, false
	}
	return businessUUID, true
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var partial *services.PartialRescheduleError
	if errors.As(err, &partial) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":       "time slot unavailable; original appointment was cancelled",
			"partial":     true,
			"cancelledId": partial.CancelledID,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, "Time slot unavailable")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		// Possibly a tenant-isolation bug; keep a trace for investigation.
		config.Log.Warn("entity not found", zap.Error(err), zap.String("path", c.Request.URL.Path))
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrUnauthorized):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid finance password")
	default:
		config.Log.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
