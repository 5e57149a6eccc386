package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationService handles loan application business logic
type ApplicationService struct {
	appRepo repositories.ApplicationRepository
}

// NewApplicationService creates a new loan application service
func NewApplicationService(appRepo repositories.ApplicationRepository) *ApplicationService {
	return &ApplicationService{appRepo: appRepo}
}

// CreateApplicationInput represents application submission input
type CreateApplicationInput struct {
	BusinessName string  `json:"business_name" validate:"required"`
	BusinessType string  `json:"business_type" validate:"required"`
	LoanAmount   float64 `json:"loan_amount" validate:"required,gt=0"`
	LoanPurpose  string  `json:"loan_purpose" validate:"required"`
}

// UpdateApplicationInput names exactly the mutable fields of an
// application. Updates go through this closed struct so protected
// columns can never be reached from a request body.
type UpdateApplicationInput struct {
	Status                *domain.ApplicationStatus   `json:"status"`
	Priority              *domain.ApplicationPriority `json:"priority"`
	LoanOfficerID         *uuid.UUID                  `json:"loan_officer_id"`
	UnderwriterID         *uuid.UUID                  `json:"underwriter_id"`
	RiskScore             *float64                    `json:"risk_score"`
	Recommendation        *string                     `json:"recommendation"`
	RecommendationSummary *string                     `json:"recommendation_summary"`
	AnalystNotes          *string                     `json:"analyst_notes"`
}

// ListApplicationsOutput represents a paginated application listing
type ListApplicationsOutput struct {
	Items []*models.LoanApplicationResponse `json:"items"`
	Total int64                             `json:"total"`
	Page  int                               `json:"page"`
	Size  int                               `json:"size"`
	Pages int                               `json:"pages"`
}

// Create submits a new loan application for the calling user
func (s *ApplicationService) Create(ctx context.Context, user *models.User, input *CreateApplicationInput) (*models.LoanApplication, error) {
	app := &models.LoanApplication{
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		LoanAmount:   input.LoanAmount,
		LoanPurpose:  input.LoanPurpose,
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
		BorrowerID:   user.ID,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	reason := "Application submitted"
	entry := &models.ApplicationStatusHistory{
		ApplicationID: app.ID,
		UserID:        user.ID,
		NewStatus:     domain.StatusPending,
		Reason:        &reason,
	}
	if err := s.appRepo.RecordStatusChange(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to record status history for %s: %v", app.ID, err)
	}

	log.Printf("✅ Application created: %s (%s)", app.ID, app.BusinessName)
	return app, nil
}

// Get fetches a single application after the point access check
func (s *ApplicationService) Get(ctx context.Context, user *models.User, id uuid.UUID) (*models.LoanApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !CanAccessApplication(user, app.Ownership(), false) {
		return nil, domain.ErrForbidden
	}

	return app, nil
}

// List lists applications inside the caller's visibility predicate
func (s *ApplicationService) List(ctx context.Context, user *models.User, filters *repositories.ApplicationFilters, page, size int) (*ListApplicationsOutput, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	scope := ApplicationVisibility(user).Scope()
	apps, total, err := s.appRepo.List(ctx, scope, filters, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LoanApplicationResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, app.ToResponse())
	}

	return &ListApplicationsOutput{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// Update applies the closed update struct to an application. Status
// transitions are recorded and a final decision stamps decision_date.
func (s *ApplicationService) Update(ctx context.Context, user *models.User, id uuid.UUID, input *UpdateApplicationInput) (*models.LoanApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !CanAccessApplication(user, app.Ownership(), false) {
		return nil, domain.ErrForbidden
	}

	oldStatus := app.Status

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidInput
		}
		app.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, domain.ErrInvalidInput
		}
		app.Priority = *input.Priority
	}
	if input.LoanOfficerID != nil {
		app.LoanOfficerID = input.LoanOfficerID
	}
	if input.UnderwriterID != nil {
		app.UnderwriterID = input.UnderwriterID
	}
	if input.RiskScore != nil {
		app.RiskScore = input.RiskScore
	}
	if input.Recommendation != nil {
		app.Recommendation = input.Recommendation
	}
	if input.RecommendationSummary != nil {
		app.RecommendationSummary = input.RecommendationSummary
	}
	if input.AnalystNotes != nil {
		app.AnalystNotes = input.AnalystNotes
	}

	if input.Status != nil && app.Status.IsFinal() && app.DecisionDate == nil {
		now := time.Now().UTC()
		app.DecisionDate = &now
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	if input.Status != nil && app.Status != oldStatus {
		reason := fmt.Sprintf("Status updated by %s", user.Name)
		entry := &models.ApplicationStatusHistory{
			ApplicationID: app.ID,
			UserID:        user.ID,
			OldStatus:     &oldStatus,
			NewStatus:     app.Status,
			Reason:        &reason,
		}
		if err := s.appRepo.RecordStatusChange(ctx, entry); err != nil {
			log.Printf("⚠️ Failed to record status history for %s: %v", app.ID, err)
		}
	}

	return app, nil
}

// Delete removes an application. Admin only; everyone else gets a hard
// deny regardless of ownership.
func (s *ApplicationService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	if !InRole(user, domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	if _, err := s.appRepo.GetByID(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.appRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Application deleted: %s (by %s)", id, user.Email)
	return nil
}

// access fetches an application and runs the point check; shared by the
// sub-resource services
func (s *ApplicationService) access(ctx context.Context, user *models.User, id uuid.UUID) (*models.LoanApplication, error) {
	app, err := s.appRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if !CanAccessApplication(user, app.Ownership(), false) {
		return nil, domain.ErrForbidden
	}

	return app, nil
}
