package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/internal/models"
	"github.com/navhub-dev/navhub/internal/service"
	"github.com/navhub-dev/navhub/internal/utils"
	"go.uber.org/zap"
)

// LoginRequest fields are not required: empty credentials are simply wrong
// credentials and answer 401 like any other mismatch.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.auth.Login(ctx.Request.Context(), body.Username, body.Password)

	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) ChangePassword(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body ChangePasswordRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err = h.auth.ChangePassword(ctx.Request.Context(), userID, body.CurrentPassword, body.NewPassword)

	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	case errors.Is(err, models.ErrInvalidCredentials):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
	default:
		respondError(ctx, h.logger, err)
	}
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	user, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, user)
}
