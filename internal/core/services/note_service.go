package services

import (
	"context"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
)

// NoteService handles team note business logic
type NoteService struct {
	noteRepo repositories.NoteRepository
	appSvc   *ApplicationService
}

// NewNoteService creates a new team note service
func NewNoteService(noteRepo repositories.NoteRepository, appSvc *ApplicationService) *NoteService {
	return &NoteService{noteRepo: noteRepo, appSvc: appSvc}
}

// CreateNoteInput represents note creation input
type CreateNoteInput struct {
	Content   string `json:"content" validate:"required"`
	IsPrivate bool   `json:"is_private"`
}

// Create adds a team note to an application the caller can access
func (s *NoteService) Create(ctx context.Context, user *models.User, applicationID uuid.UUID, input *CreateNoteInput) (*models.TeamNote, error) {
	if _, err := s.appSvc.access(ctx, user, applicationID); err != nil {
		return nil, err
	}

	note := &models.TeamNote{
		ApplicationID: applicationID,
		AuthorID:      user.ID,
		Content:       input.Content,
		IsPrivate:     input.IsPrivate,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List lists notes of an application the caller can access. Private
// notes are hidden from borrowers on top of the application-level check.
func (s *NoteService) List(ctx context.Context, user *models.User, applicationID uuid.UUID) ([]*models.TeamNote, error) {
	if _, err := s.appSvc.access(ctx, user, applicationID); err != nil {
		return nil, err
	}

	return s.noteRepo.ListByApplication(ctx, applicationID, CanSeePrivateNotes(user))
}
