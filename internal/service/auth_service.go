package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
)

// UserStore is the credential storage the auth service depends on.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// AuthService handles login and password changes
type AuthService struct {
	users  UserStore
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewAuthService(users UserStore, tokens *auth.TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks the credentials and returns a signed bearer token. Unknown
// users and wrong passwords both yield models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Debug("password verification failed", zap.String("username", username))
		return "", models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// ChangePassword replaces the password of userID after verifying the current
// one. Tokens issued before the change remain valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return models.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.Uint("userID", userID))
	return nil
}

// ResetPassword sets a new password for username without checking the old
// one. It backs the offline reset-password command.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, user.ID, hash)
}
