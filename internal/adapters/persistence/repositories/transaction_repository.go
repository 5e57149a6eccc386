package repositories

import (
	"context"

	"caelo-backend/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create creates a new transaction
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// ListByApplication lists transactions of an application, newest first
func (r *transactionRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("transaction_date DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
