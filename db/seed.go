package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// DefaultSearchEngines are installed on first start. The "local" engine
// filters bookmarks in the page instead of leaving the site.
func DefaultSearchEngines() []models.SearchEngine {
	return []models.SearchEngine{
		{Name: "站内", URL: "local", Placeholder: strPtr("搜索书签..."), SortOrder: 1, IsDefault: true},
		{Name: "Google", URL: "https://www.google.com/search?q=", Placeholder: strPtr("Google 搜索"), SortOrder: 2},
		{Name: "Bing", URL: "https://www.bing.com/search?q=", Placeholder: strPtr("Bing 搜索"), SortOrder: 3},
		{Name: "百度", URL: "https://www.baidu.com/s?wd=", Placeholder: strPtr("百度一下"), SortOrder: 4},
	}
}

// Seed creates the admin account and the default search engines when they
// are missing. Existing rows are never modified, so it is safe to run on
// every start.
func Seed(ctx context.Context, db *gorm.DB, username, password string, logger *zap.Logger) error {
	var admin models.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&admin).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin = models.User{Username: username, Password: hash}
		if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logger.Info("Created admin user", zap.String("username", username))
	case err != nil:
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var defaults int64
		if err := tx.Model(&models.SearchEngine{}).Where("is_default = ?", true).Count(&defaults).Error; err != nil {
			return fmt.Errorf("failed to count default search engines: %w", err)
		}

		for _, engine := range DefaultSearchEngines() {
			// Never add a second default next to one the admin picked.
			if engine.IsDefault && defaults > 0 {
				engine.IsDefault = false
			}

			result := tx.Where("name = ?", engine.Name).FirstOrCreate(&engine)
			if result.Error != nil {
				return fmt.Errorf("failed to seed search engine %q: %w", engine.Name, result.Error)
			}
			if result.RowsAffected > 0 {
				logger.Debug("Seeded search engine", zap.String("name", engine.Name))
			}
		}

		return nil
	})
}
