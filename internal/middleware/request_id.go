package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/navhub-dev/navhub/internal/types"
)

// RequestID propagates X-Request-ID, generating one when the client sent none.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(types.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx.Set(types.ContextRequestIDKey, requestID)
		ctx.Header(types.RequestIDHeader, requestID)
		ctx.Next()
	}
}
