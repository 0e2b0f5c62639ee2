package repository

import (
	"context"
	"fmt"

	"github.com/navhub-dev/navhub/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingPair is one requested key/value write.
type SettingPair struct {
	Key   string
	Value string
}

// BatchResult reports the outcome of UpsertMany. Skipped holds the indexes of
// pairs that were ignored because their key was empty.
type BatchResult struct {
	Updated int   `json:"updated"`
	Skipped []int `json:"skipped"`
}

// SettingRepository stores free-standing key/value settings
type SettingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSettingRepository(db *gorm.DB, logger *zap.Logger) *SettingRepository {
	return &SettingRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every setting as a key to value mapping.
func (r *SettingRepository) List(ctx context.Context) (map[string]string, error) {
	var settings []models.Setting
	if err := r.db.WithContext(ctx).Find(&settings).Error; err != nil {
		r.logger.Error("Failed to list settings", zap.Error(err))
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.ID] = s.Value
	}
	return result, nil
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).Where("id = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert creates the setting or overwrites its value.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) (*models.Setting, error) {
	if key == "" {
		return nil, models.ErrSettingKeyRequired
	}

	if err := upsertSetting(r.db.WithContext(ctx), key, value); err != nil {
		r.logger.Error("Failed to upsert setting", zap.Error(err), zap.String("key", key))
		return nil, err
	}

	return r.Get(ctx, key)
}

// UpsertMany writes every pair that has a key inside one transaction, in
// order, so a later duplicate key wins. Pairs without a key are skipped and
// do not affect the others. A store failure rolls the whole batch back.
func (r *SettingRepository) UpsertMany(ctx context.Context, pairs []SettingPair) (*BatchResult, error) {
	result := &BatchResult{Skipped: []int{}}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, pair := range pairs {
			if pair.Key == "" {
				result.Skipped = append(result.Skipped, i)
				continue
			}

			if err := upsertSetting(tx, pair.Key, pair.Value); err != nil {
				return fmt.Errorf("failed to upsert setting %q: %w", pair.Key, err)
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to upsert settings batch", zap.Error(err), zap.Int("pairs", len(pairs)))
		return nil, err
	}

	return result, nil
}

func upsertSetting(db *gorm.DB, key, value string) error {
	setting := models.Setting{ID: key, Value: value}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
