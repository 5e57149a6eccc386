package repositories

import (
	"context"
	"time"

	"caelo-backend/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create creates a new message
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetByID gets a message by ID
func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByApplication lists messages of an application in chronological order
func (r *messageRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Message, error) {
	var msgs []*models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead stamps a message as read
func (r *messageRepository) MarkRead(ctx context.Context, msg *models.Message) error {
	now := time.Now().UTC()
	msg.IsRead = true
	msg.ReadAt = &now
	return r.db.WithContext(ctx).Model(msg).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}
