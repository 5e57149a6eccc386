package repositories

import (
	"context"

	"caelo-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// metricsRepository implements MetricsRepository interface
type metricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new application metrics repository
func NewMetricsRepository(db *gorm.DB) MetricsRepository {
	return &metricsRepository{db: db}
}

// Create writes a daily metrics snapshot
func (r *metricsRepository) Create(ctx context.Context, metric *models.ApplicationMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

// GetLatest returns the most recent snapshot
func (r *metricsRepository) GetLatest(ctx context.Context) (*models.ApplicationMetric, error) {
	var metric models.ApplicationMetric
	err := r.db.WithContext(ctx).Order("date DESC").First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}
