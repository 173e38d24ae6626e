package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"heybabyy/internal/growth"
	"heybabyy/internal/service"
	"heybabyy/internal/validation"
)

func respondWithError(c *gin.Context, logger *zap.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Warn(logMsg,
			zap.Error(err),
			zap.Int("status", status),
			zap.String("path", c.FullPath()))
	}

	c.AbortWithStatusJSON(status, gin.H{"error": userMsg})
}

// respondWithServiceError maps service and engine errors onto HTTP statuses
func respondWithServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var ve validation.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, service.ErrChildNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": ErrChildNotFound})
	case errors.Is(err, service.ErrDuplicateEntry):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": ErrDuplicateEntry})
	case errors.Is(err, service.ErrEmailDisabled):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": ErrEmailUnavailable})
	case errors.Is(err, growth.ErrNonPositiveMeasurement),
		errors.Is(err, growth.ErrUnknownSex),
		errors.Is(err, growth.ErrUnknownMeasurementType):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		respondWithError(c, logger, http.StatusInternalServerError, ErrInternalServerError, "Request failed", err)
	}
}
