package services

import (
	"context"
	"math"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
)

// anomalyThreshold is the absolute amount above which a transaction is
// flagged for review
const anomalyThreshold = 10000.0

// TransactionService handles application transaction business logic
type TransactionService struct {
	txnRepo repositories.TransactionRepository
	appSvc  *ApplicationService
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo repositories.TransactionRepository, appSvc *ApplicationService) *TransactionService {
	return &TransactionService{txnRepo: txnRepo, appSvc: appSvc}
}

// CreateTransactionInput represents transaction creation input
type CreateTransactionInput struct {
	TransactionDate time.Time              `json:"transaction_date" validate:"required"`
	Type            domain.TransactionType `json:"type" validate:"required"`
	Category        string                 `json:"category" validate:"required"`
	Description     string                 `json:"description" validate:"required"`
	Amount          float64                `json:"amount" validate:"required"`
	SourceAccount   *string                `json:"source_account"`
	ReferenceNumber *string                `json:"reference_number"`
}

// Create records a transaction against an application the caller can
// access. Large amounts are flagged as anomalies.
func (s *TransactionService) Create(ctx context.Context, user *models.User, applicationID uuid.UUID, input *CreateTransactionInput) (*models.Transaction, error) {
	if _, err := s.appSvc.access(ctx, user, applicationID); err != nil {
		return nil, err
	}

	if !input.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}

	txn := &models.Transaction{
		ApplicationID:   applicationID,
		TransactionDate: input.TransactionDate,
		Type:            input.Type,
		Category:        input.Category,
		Description:     input.Description,
		Amount:          input.Amount,
		SourceAccount:   input.SourceAccount,
		ReferenceNumber: input.ReferenceNumber,
	}

	if math.Abs(txn.Amount) > anomalyThreshold {
		score := 0.8
		explanation := "Large transaction amount flagged for review"
		txn.AnomalyScore = &score
		txn.IsAnomaly = true
		txn.AnomalyExplanation = &explanation
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// List lists transactions of an application the caller can access
func (s *TransactionService) List(ctx context.Context, user *models.User, applicationID uuid.UUID) ([]*models.Transaction, error) {
	if _, err := s.appSvc.access(ctx, user, applicationID); err != nil {
		return nil, err
	}

	return s.txnRepo.ListByApplication(ctx, applicationID)
}
