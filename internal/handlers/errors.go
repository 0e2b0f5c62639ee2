package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
)

// respondError maps store and domain errors onto HTTP status codes. Unknown
// failures are reported as 500 with the underlying message.
func respondError(ctx *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	case errors.Is(err, models.ErrTagNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
	case errors.Is(err, models.ErrSearchEngineNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Search engine not found"})
	case errors.Is(err, models.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, models.ErrSettingKeyRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Setting key is required"})
	default:
		logger.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func invalidID(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
}
