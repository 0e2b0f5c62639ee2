package repository

import (
	"context"

	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCategoryRepository(db *gorm.DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all categories with their tags, both ordered by sort order
// and then by creation.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	err := r.db.WithContext(ctx).
		Preload("Tags", orderedTags).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}

	for i := range categories {
		if categories[i].Tags == nil {
			categories[i].Tags = []models.Tag{}
		}
	}

	return categories, nil
}

// Get returns a single category with its ordered tags.
func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category

	err := r.db.WithContext(ctx).
		Preload("Tags", orderedTags).
		First(&category, id).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrCategoryNotFound)
	}

	if category.Tags == nil {
		category.Tags = []models.Tag{}
	}

	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Omit("Tags").Create(category).Error; err != nil {
		r.logger.Error("Failed to create category", zap.Error(err))
		return err
	}
	if category.Tags == nil {
		category.Tags = []models.Tag{}
	}
	return nil
}

// Update applies the given column updates and returns the refreshed row.
func (r *CategoryRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Category, error) {
	category, err := getByID[models.Category](r.db, ctx, id, models.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
			r.logger.Error("Failed to update category", zap.Error(err), zap.Uint("id", id))
			return nil, err
		}
	}

	return r.Get(ctx, id)
}

// Delete removes the category together with every tag it owns.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getByID[models.Category](tx, ctx, id, models.ErrCategoryNotFound); err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			r.logger.Error("Failed to delete category tags", zap.Error(err), zap.Uint("id", id))
			return err
		}

		return deleteByID[models.Category](tx, ctx, id, models.ErrCategoryNotFound)
	})
}

func orderedTags(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}
