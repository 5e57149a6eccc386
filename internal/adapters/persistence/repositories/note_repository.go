package repositories

import (
	"context"

	"caelo-backend/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// noteRepository implements NoteRepository interface
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new team note repository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// Create creates a new team note
func (r *noteRepository) Create(ctx context.Context, note *models.TeamNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// ListByApplication lists notes of an application, newest first.
// When includePrivate is false, private notes are filtered out at the
// query level.
func (r *noteRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID, includePrivate bool) ([]*models.TeamNote, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("application_id = ?", applicationID)

	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var notes []*models.TeamNote
	if err := query.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
