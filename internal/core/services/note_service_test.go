package services

import (
	"context"
	"errors"
	"testing"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
)

// stubNoteRepo is an in-memory NoteRepository for service tests
type stubNoteRepo struct {
	notes []*models.TeamNote
}

func (r *stubNoteRepo) Create(_ context.Context, note *models.TeamNote) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	r.notes = append(r.notes, note)
	return nil
}

func (r *stubNoteRepo) ListByApplication(_ context.Context, applicationID uuid.UUID, includePrivate bool) ([]*models.TeamNote, error) {
	var out []*models.TeamNote
	for _, note := range r.notes {
		if note.ApplicationID != applicationID {
			continue
		}
		if note.IsPrivate && !includePrivate {
			continue
		}
		out = append(out, note)
	}
	return out, nil
}

func TestListNotesHidesPrivateFromBorrower(t *testing.T) {
	appRepo := newStubAppRepo()
	noteRepo := &stubNoteRepo{}
	svc := NewNoteService(noteRepo, NewApplicationService(appRepo))

	borrower := testUser(domain.RoleBorrower)
	analyst := testUser(domain.RoleAnalyst)

	app := &models.LoanApplication{
		BusinessName: "Corner Bakery",
		BorrowerID:   borrower.ID,
		Status:       domain.StatusUnderReview,
	}
	if err := appRepo.Create(context.Background(), app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := svc.Create(context.Background(), analyst, app.ID, &CreateNoteInput{Content: "Docs look complete"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), analyst, app.ID, &CreateNoteInput{Content: "Credit history concerns", IsPrivate: true}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// The owning borrower can list notes, but private ones are filtered
	notes, err := svc.List(context.Background(), borrower, app.ID)
	if err != nil {
		t.Fatalf("borrower List returned error: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("borrower: got %d notes, want 1", len(notes))
	}
	if notes[0].IsPrivate {
		t.Error("borrower must never receive a private note")
	}

	// Staff see the full set
	notes, err = svc.List(context.Background(), analyst, app.ID)
	if err != nil {
		t.Fatalf("analyst List returned error: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("analyst: got %d notes, want 2", len(notes))
	}

	// A foreign borrower still fails the application access check
	if _, err := svc.List(context.Background(), testUser(domain.RoleBorrower), app.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign borrower: got %v, want ErrForbidden", err)
	}
}
