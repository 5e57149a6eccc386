package services

import (
	"context"
	"log"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MetricsService writes a daily snapshot of application counts to the
// application_metrics table. Runs on a cron schedule (08:30 daily).
type MetricsService struct {
	appRepo     repositories.ApplicationRepository
	metricsRepo repositories.MetricsRepository
	cron        *cron.Cron
}

// NewMetricsService creates a new metrics snapshot service
func NewMetricsService(appRepo repositories.ApplicationRepository, metricsRepo repositories.MetricsRepository) *MetricsService {
	return &MetricsService{
		appRepo:     appRepo,
		metricsRepo: metricsRepo,
		cron:        cron.New(),
	}
}

// Start schedules the daily snapshot job
func (s *MetricsService) Start() {
	_, err := s.cron.AddFunc("30 8 * * *", func() {
		if err := s.Snapshot(context.Background()); err != nil {
			log.Printf("⚠️ Metrics snapshot failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("⚠️ Failed to schedule metrics snapshot: %v", err)
		return
	}

	s.cron.Start()
	log.Println("✅ Metrics snapshot scheduled (08:30 daily)")
}

// Stop stops the scheduler
func (s *MetricsService) Stop() {
	s.cron.Stop()
}

// Snapshot writes one metrics row covering all applications
func (s *MetricsService) Snapshot(ctx context.Context) error {
	unrestricted := func(db *gorm.DB) *gorm.DB { return db }

	counts, err := s.appRepo.Stats(ctx, unrestricted)
	if err != nil {
		return err
	}

	metric := &models.ApplicationMetric{
		Date:                    time.Now().UTC().Truncate(24 * time.Hour),
		TotalApplications:       int(counts.Total),
		PendingApplications:     int(counts.Pending),
		ApprovedApplications:    int(counts.Approved),
		RejectedApplications:    int(counts.Rejected),
		UnderReviewApplications: int(counts.UnderReview),
		TotalLoanAmount:         counts.TotalAmount,
	}

	decided := counts.Approved + counts.Rejected
	if decided > 0 {
		rate := float64(counts.Approved) / float64(decided) * 100
		metric.ApprovalRate = &rate
	}

	if err := s.metricsRepo.Create(ctx, metric); err != nil {
		return err
	}

	log.Printf("✅ Metrics snapshot written: %d applications", metric.TotalApplications)
	return nil
}
