package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/types"
	"go.uber.org/zap"
)

// AuthenticatedUser is the identity carried by a verified token.
type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AuthMiddleware rejects requests without a valid token. The token is the
// second word of the Authorization header whatever the scheme. A missing
// header or token is 401; a token that fails verification is 403.
func AuthMiddleware(tokens *auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[1] == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		claims, err := tokens.Verify(parts[1])

		if err != nil {
			logger.Debug("token rejected", zap.Error(err), zap.String("path", ctx.Request.URL.Path))
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       claims.UserID,
			Username: claims.Username,
		})
		ctx.Next()
	}
}
