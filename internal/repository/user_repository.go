package repository

import (
	"context"
	"fmt"

	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository stores the admin credentials
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, convertNotFoundError(err, models.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return getByID[models.User](r.db, ctx, id, models.ErrUserNotFound)
}

// UpdatePassword replaces the stored hash for the given user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if result.Error != nil {
		r.logger.Error("Failed to update password", zap.Error(result.Error), zap.Uint("id", id))
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
