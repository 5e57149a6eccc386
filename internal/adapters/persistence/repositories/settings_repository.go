package repositories

import (
	"context"
	"errors"

	"caelo-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new system settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// List lists all system settings
func (r *settingsRepository) List(ctx context.Context) ([]*models.SystemSetting, error) {
	var settings []*models.SystemSetting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetByKey gets a system setting by key
func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert creates or updates a setting by key
func (r *settingsRepository) Upsert(ctx context.Context, setting *models.SystemSetting) error {
	existing, err := r.GetByKey(ctx, setting.Key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(setting).Error
		}
		return err
	}

	existing.Value = setting.Value
	if setting.Description != nil {
		existing.Description = setting.Description
	}
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return err
	}
	*setting = *existing
	return nil
}
