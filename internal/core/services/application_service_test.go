package services

import (
	"context"
	"errors"
	"testing"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stubAppRepo is an in-memory ApplicationRepository for service tests
type stubAppRepo struct {
	apps    map[uuid.UUID]*models.LoanApplication
	history []*models.ApplicationStatusHistory
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{apps: make(map[uuid.UUID]*models.LoanApplication)}
}

func (r *stubAppRepo) Create(_ context.Context, app *models.LoanApplication) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	r.apps[app.ID] = app
	return nil
}

func (r *stubAppRepo) GetByID(_ context.Context, id uuid.UUID, _ bool) (*models.LoanApplication, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return app, nil
}

func (r *stubAppRepo) List(_ context.Context, _ repositories.Scope, _ *repositories.ApplicationFilters, _, _ int) ([]*models.LoanApplication, int64, error) {
	var out []*models.LoanApplication
	for _, app := range r.apps {
		out = append(out, app)
	}
	return out, int64(len(out)), nil
}

func (r *stubAppRepo) Update(_ context.Context, app *models.LoanApplication) error {
	r.apps[app.ID] = app
	return nil
}

func (r *stubAppRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.apps, id)
	return nil
}

func (r *stubAppRepo) Stats(_ context.Context, _ repositories.Scope) (*repositories.StatusCounts, error) {
	return &repositories.StatusCounts{}, nil
}

func (r *stubAppRepo) RecordStatusChange(_ context.Context, entry *models.ApplicationStatusHistory) error {
	r.history = append(r.history, entry)
	return nil
}

func TestCreateApplicationDefaults(t *testing.T) {
	repo := newStubAppRepo()
	svc := NewApplicationService(repo)
	borrower := testUser(domain.RoleBorrower)

	app, err := svc.Create(context.Background(), borrower, &CreateApplicationInput{
		BusinessName: "Corner Bakery",
		BusinessType: "food_service",
		LoanAmount:   50000,
		LoanPurpose:  "Equipment purchase",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if app.Status != domain.StatusPending {
		t.Errorf("status: got %q, want %q", app.Status, domain.StatusPending)
	}
	if app.Priority != domain.PriorityMedium {
		t.Errorf("priority: got %q, want %q", app.Priority, domain.PriorityMedium)
	}
	if app.BorrowerID != borrower.ID {
		t.Error("borrower_id must be the calling user, never taken from input")
	}
	if len(repo.history) != 1 {
		t.Fatalf("got %d history entries, want 1", len(repo.history))
	}
	if repo.history[0].NewStatus != domain.StatusPending {
		t.Errorf("history status: got %q, want %q", repo.history[0].NewStatus, domain.StatusPending)
	}
}

func TestGetApplicationAccessDenied(t *testing.T) {
	repo := newStubAppRepo()
	svc := NewApplicationService(repo)

	owner := testUser(domain.RoleBorrower)
	app := &models.LoanApplication{
		BusinessName: "Corner Bakery",
		BorrowerID:   owner.ID,
		Status:       domain.StatusPending,
	}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	other := testUser(domain.RoleBorrower)
	if _, err := svc.Get(context.Background(), other, app.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other borrower: got %v, want ErrForbidden", err)
	}

	if _, err := svc.Get(context.Background(), owner, app.ID); err != nil {
		t.Errorf("owner: got %v, want nil", err)
	}

	if _, err := svc.Get(context.Background(), testUser(domain.RoleAnalyst), app.ID); err != nil {
		t.Errorf("analyst: got %v, want nil", err)
	}

	if _, err := svc.Get(context.Background(), owner, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing record: got %v, want ErrNotFound", err)
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	repo := newStubAppRepo()
	svc := NewApplicationService(repo)
	analyst := testUser(domain.RoleAnalyst)

	app := &models.LoanApplication{
		BusinessName: "Corner Bakery",
		BorrowerID:   uuid.New(),
		Status:       domain.StatusUnderReview,
	}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	bad := domain.ApplicationStatus("vaporized")
	if _, err := svc.Update(context.Background(), analyst, app.ID, &UpdateApplicationInput{Status: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("invalid status: got %v, want ErrInvalidInput", err)
	}

	approved := domain.StatusApproved
	updated, err := svc.Update(context.Background(), analyst, app.ID, &UpdateApplicationInput{Status: &approved})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Status != domain.StatusApproved {
		t.Errorf("status: got %q, want %q", updated.Status, domain.StatusApproved)
	}
	if updated.DecisionDate == nil {
		t.Error("final decision must stamp decision_date")
	}
	if len(repo.history) != 1 {
		t.Fatalf("got %d history entries, want 1", len(repo.history))
	}
	if repo.history[0].OldStatus == nil || *repo.history[0].OldStatus != domain.StatusUnderReview {
		t.Error("history must carry the previous status")
	}
}

func TestDeleteApplicationAdminOnly(t *testing.T) {
	repo := newStubAppRepo()
	svc := NewApplicationService(repo)

	owner := testUser(domain.RoleBorrower)
	app := &models.LoanApplication{
		BusinessName: "Corner Bakery",
		BorrowerID:   owner.ID,
		Status:       domain.StatusPending,
	}
	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// Even the owning borrower cannot delete; analysts and officers
	// cannot either
	for _, role := range []domain.Role{domain.RoleAnalyst, domain.RoleLoanOfficer} {
		if err := svc.Delete(context.Background(), testUser(role), app.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: got %v, want ErrForbidden", role, err)
		}
	}
	if err := svc.Delete(context.Background(), owner, app.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("owner: got %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), testUser(domain.RoleAdmin), app.ID); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}
	if _, ok := repo.apps[app.ID]; ok {
		t.Error("application must be removed")
	}
}
