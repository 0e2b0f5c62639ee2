package repository

import (
	"context"

	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SearchEngineRepository handles database operations for search engines.
// Writes that make an engine the default clear the flag on every other
// engine in the same transaction, so at most one default exists.
type SearchEngineRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSearchEngineRepository(db *gorm.DB, logger *zap.Logger) *SearchEngineRepository {
	return &SearchEngineRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SearchEngineRepository) List(ctx context.Context) ([]models.SearchEngine, error) {
	engines, err := listOrdered[models.SearchEngine](r.db, ctx)
	if err != nil {
		r.logger.Error("Failed to list search engines", zap.Error(err))
		return nil, err
	}
	return engines, nil
}

func (r *SearchEngineRepository) Get(ctx context.Context, id uint) (*models.SearchEngine, error) {
	return getByID[models.SearchEngine](r.db, ctx, id, models.ErrSearchEngineNotFound)
}

func (r *SearchEngineRepository) Create(ctx context.Context, engine *models.SearchEngine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if engine.IsDefault {
			if err := clearDefault(tx, 0); err != nil {
				return err
			}
		}

		if err := tx.Create(engine).Error; err != nil {
			r.logger.Error("Failed to create search engine", zap.Error(err))
			return err
		}
		return nil
	})
}

// Update applies the given column updates and returns the refreshed row.
func (r *SearchEngineRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.SearchEngine, error) {
	var engine *models.SearchEngine

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getByID[models.SearchEngine](tx, ctx, id, models.ErrSearchEngineNotFound)
		if err != nil {
			return err
		}

		if isDefault, ok := updates["is_default"].(bool); ok && isDefault {
			if err := clearDefault(tx, id); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(current).Updates(updates).Error; err != nil {
				r.logger.Error("Failed to update search engine", zap.Error(err), zap.Uint("id", id))
				return err
			}
		}

		engine, err = getByID[models.SearchEngine](tx, ctx, id, models.ErrSearchEngineNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}

	return engine, nil
}

func (r *SearchEngineRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.SearchEngine](r.db, ctx, id, models.ErrSearchEngineNotFound)
}

// clearDefault unsets the default flag on every engine except keepID.
func clearDefault(tx *gorm.DB, keepID uint) error {
	return tx.Model(&models.SearchEngine{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
}
