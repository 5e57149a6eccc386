package services

import (
	"context"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
)

// DashboardService aggregates statistics inside the caller's visibility
// predicate, so every role sees numbers for exactly the records it may
// list.
type DashboardService struct {
	appRepo repositories.ApplicationRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(appRepo repositories.ApplicationRepository) *DashboardService {
	return &DashboardService{appRepo: appRepo}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalApplications       int64    `json:"total_applications"`
	PendingApplications     int64    `json:"pending_applications"`
	ApprovedApplications    int64    `json:"approved_applications"`
	RejectedApplications    int64    `json:"rejected_applications"`
	UnderReviewApplications int64    `json:"under_review_applications"`
	TotalLoanAmount         float64  `json:"total_loan_amount"`
	ApprovalRate            *float64 `json:"approval_rate"`
}

// Stats computes dashboard statistics for the current user
func (s *DashboardService) Stats(ctx context.Context, user *models.User) (*DashboardStats, error) {
	scope := ApplicationVisibility(user).Scope()

	counts, err := s.appRepo.Stats(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalApplications:       counts.Total,
		PendingApplications:     counts.Pending,
		ApprovedApplications:    counts.Approved,
		RejectedApplications:    counts.Rejected,
		UnderReviewApplications: counts.UnderReview,
		TotalLoanAmount:         counts.TotalAmount,
	}

	decided := counts.Approved + counts.Rejected
	if decided > 0 {
		rate := float64(counts.Approved) / float64(decided) * 100
		stats.ApprovalRate = &rate
	}

	return stats, nil
}
