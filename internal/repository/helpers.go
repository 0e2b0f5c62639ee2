package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// convertNotFoundError maps gorm.ErrRecordNotFound to the entity's sentinel.
func convertNotFoundError(err, notFoundErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return err
}

// getByID loads a single row of T by primary key.
func getByID[T any](db *gorm.DB, ctx context.Context, id uint, notFoundErr error) (*T, error) {
	var result T
	if err := db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listOrdered returns every row of T by display order, oldest first on ties.
func listOrdered[T any](db *gorm.DB, ctx context.Context) ([]T, error) {
	results := []T{}
	if err := db.WithContext(ctx).Order("sort_order ASC").Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// deleteByID removes the row of T with the given id, returning notFoundErr
// when nothing was deleted.
func deleteByID[T any](db *gorm.DB, ctx context.Context, id uint, notFoundErr error) error {
	var model T
	result := db.WithContext(ctx).Delete(&model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}
