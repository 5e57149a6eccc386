package repositories

import (
	"context"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new loan application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new loan application
func (r *applicationRepository) Create(ctx context.Context, app *models.LoanApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets a loan application by ID, optionally with relations
func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID, preload bool) (*models.LoanApplication, error) {
	query := r.db.WithContext(ctx)
	if preload {
		query = query.
			Preload("Borrower").
			Preload("LoanOfficer").
			Preload("Underwriter")
	}

	var app models.LoanApplication
	if err := query.Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// List lists loan applications inside the caller's visibility scope.
// The scope is mandatory; client filters only narrow it further.
func (r *applicationRepository) List(ctx context.Context, scope Scope, filters *ApplicationFilters, offset, limit int) ([]*models.LoanApplication, int64, error) {
	var apps []*models.LoanApplication
	var total int64

	query := r.db.WithContext(ctx).Model(&models.LoanApplication{}).
		Scopes(scope).
		Preload("Borrower").
		Preload("LoanOfficer").
		Preload("Underwriter")

	query = applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).
		Order("application_date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// Update updates a loan application
func (r *applicationRepository) Update(ctx context.Context, app *models.LoanApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// Delete removes a loan application
func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LoanApplication{}, "id = ?", id).Error
}

// Stats aggregates per-status counts and the loan amount sum inside a
// visibility scope
func (r *applicationRepository) Stats(ctx context.Context, scope Scope) (*StatusCounts, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.LoanApplication{}).Scopes(scope)
	}

	var counts StatusCounts
	if err := base().Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusPending).Count(&counts.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusApproved).Count(&counts.Approved).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusRejected).Count(&counts.Rejected).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", domain.StatusUnderReview).Count(&counts.UnderReview).Error; err != nil {
		return nil, err
	}

	var totalAmount *float64
	if err := base().Select("SUM(loan_amount)").Scan(&totalAmount).Error; err != nil {
		return nil, err
	}
	if totalAmount != nil {
		counts.TotalAmount = *totalAmount
	}

	return &counts, nil
}

// RecordStatusChange appends a status history entry
func (r *applicationRepository) RecordStatusChange(ctx context.Context, entry *models.ApplicationStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// applyFilters narrows a query by the client-requested filters
func applyFilters(query *gorm.DB, filters *ApplicationFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Priority != nil {
		query = query.Where("priority = ?", *filters.Priority)
	}
	if filters.BorrowerID != nil {
		query = query.Where("borrower_id = ?", *filters.BorrowerID)
	}
	if filters.LoanOfficerID != nil {
		query = query.Where("loan_officer_id = ?", *filters.LoanOfficerID)
	}
	if filters.MinAmount != nil {
		query = query.Where("loan_amount >= ?", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		query = query.Where("loan_amount <= ?", *filters.MaxAmount)
	}
	if filters.DateFrom != nil {
		query = query.Where("application_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("application_date <= ?", *filters.DateTo)
	}

	return query
}
