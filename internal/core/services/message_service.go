package services

import (
	"context"
	"errors"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService handles borrower/lender messaging business logic
type MessageService struct {
	msgRepo repositories.MessageRepository
	appSvc  *ApplicationService
}

// NewMessageService creates a new message service
func NewMessageService(msgRepo repositories.MessageRepository, appSvc *ApplicationService) *MessageService {
	return &MessageService{msgRepo: msgRepo, appSvc: appSvc}
}

// CreateMessageInput represents message creation input
type CreateMessageInput struct {
	Content string `json:"content" validate:"required"`
}

// Create sends a message on an application thread. Whether it counts as
// a lender message follows from the sender's role, not the request body.
func (s *MessageService) Create(ctx context.Context, user *models.User, applicationID uuid.UUID, input *CreateMessageInput) (*models.Message, error) {
	if _, err := s.appSvc.access(ctx, user, applicationID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ApplicationID: applicationID,
		SenderID:      user.ID,
		Content:       input.Content,
		IsFromLender:  user.Role.IsStaff(),
	}

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List lists the message thread of an application the caller can access
func (s *MessageService) List(ctx context.Context, user *models.User, applicationID uuid.UUID) ([]*models.Message, error) {
	if _, err := s.appSvc.access(ctx, user, applicationID); err != nil {
		return nil, err
	}

	return s.msgRepo.ListByApplication(ctx, applicationID)
}

// MarkRead marks a message as read, provided the caller can access the
// application it belongs to
func (s *MessageService) MarkRead(ctx context.Context, user *models.User, messageID uuid.UUID) (*models.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := s.appSvc.access(ctx, user, msg.ApplicationID); err != nil {
		return nil, err
	}

	if err := s.msgRepo.MarkRead(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
