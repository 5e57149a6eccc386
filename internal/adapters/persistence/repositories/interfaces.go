package repositories

import (
	"context"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope is a query-level visibility predicate applied to multi-record
// reads. Produced by the access policy engine.
type Scope func(*gorm.DB) *gorm.DB

// ApplicationFilters holds optional list filters requested by the client.
// They narrow the result set inside the caller's visibility scope, never
// widen it.
type ApplicationFilters struct {
	Status        *domain.ApplicationStatus
	Priority      *domain.ApplicationPriority
	BorrowerID    *uuid.UUID
	LoanOfficerID *uuid.UUID
	MinAmount     *float64
	MaxAmount     *float64
	DateFrom      *time.Time
	DateTo        *time.Time
}

// StatusCounts holds per-status application counts inside a scope
type StatusCounts struct {
	Total       int64
	Pending     int64
	Approved    int64
	Rejected    int64
	UnderReview int64
	TotalAmount float64
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, role *domain.Role, activeOnly bool, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ApplicationRepository defines loan application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.LoanApplication) error
	GetByID(ctx context.Context, id uuid.UUID, preload bool) (*models.LoanApplication, error)
	List(ctx context.Context, scope Scope, filters *ApplicationFilters, offset, limit int) ([]*models.LoanApplication, int64, error)
	Update(ctx context.Context, app *models.LoanApplication) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, scope Scope) (*StatusCounts, error)
	RecordStatusChange(ctx context.Context, entry *models.ApplicationStatusHistory) error
}

// TransactionRepository defines transaction repository interface
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Transaction, error)
}

// NoteRepository defines team note repository interface
type NoteRepository interface {
	Create(ctx context.Context, note *models.TeamNote) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID, includePrivate bool) ([]*models.TeamNote, error)
}

// MessageRepository defines message repository interface
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Message, error)
	MarkRead(ctx context.Context, msg *models.Message) error
}

// MetricsRepository defines application metrics repository interface
type MetricsRepository interface {
	Create(ctx context.Context, metric *models.ApplicationMetric) error
	GetLatest(ctx context.Context) (*models.ApplicationMetric, error)
}

// SettingsRepository defines system settings repository interface
type SettingsRepository interface {
	List(ctx context.Context) ([]*models.SystemSetting, error)
	GetByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	Upsert(ctx context.Context, setting *models.SystemSetting) error
}
