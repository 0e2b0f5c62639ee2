package repository

import (
	"context"

	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TagRepository handles database operations for bookmarks
type TagRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTagRepository(db *gorm.DB, logger *zap.Logger) *TagRepository {
	return &TagRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := listOrdered[models.Tag](r.db, ctx)
	if err != nil {
		r.logger.Error("Failed to list tags", zap.Error(err))
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) Get(ctx context.Context, id uint) (*models.Tag, error) {
	return getByID[models.Tag](r.db, ctx, id, models.ErrTagNotFound)
}

// Create inserts the tag after checking that its category exists.
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getByID[models.Category](tx, ctx, tag.CategoryID, models.ErrCategoryNotFound); err != nil {
			return err
		}

		if err := tx.Create(tag).Error; err != nil {
			r.logger.Error("Failed to create tag", zap.Error(err))
			return err
		}
		return nil
	})
}

// Update applies the given column updates and returns the refreshed row.
// Moving a tag requires the target category to exist.
func (r *TagRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Tag, error) {
	var tag *models.Tag

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := getByID[models.Tag](tx, ctx, id, models.ErrTagNotFound)
		if err != nil {
			return err
		}

		if categoryID, ok := updates["category_id"].(uint); ok {
			if _, err := getByID[models.Category](tx, ctx, categoryID, models.ErrCategoryNotFound); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(current).Updates(updates).Error; err != nil {
				r.logger.Error("Failed to update tag", zap.Error(err), zap.Uint("id", id))
				return err
			}
		}

		tag, err = getByID[models.Tag](tx, ctx, id, models.ErrTagNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tag, nil
}

func (r *TagRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Tag](r.db, ctx, id, models.ErrTagNotFound)
}
