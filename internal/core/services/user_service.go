package services

import (
	"context"
	"errors"
	"log"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User service errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCannotDeleteSelf   = errors.New("cannot deactivate your own account")
)

// UserService handles user administration business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Role       *domain.Role
	ActiveOnly bool
	Page       int
	Limit      int
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users      []*models.UserResponse `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// UpdateUserInput names exactly the fields an admin may change on a
// user. The password hash is deliberately absent: it can only be set
// through registration.
type UpdateUserInput struct {
	Email        *string      `json:"email"`
	Name         *string      `json:"name"`
	Organization *string      `json:"organization"`
	Role         *domain.Role `json:"role"`
	IsActive     *bool        `json:"is_active"`
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}

	users, total, err := s.userRepo.List(ctx, input.Role, input.ActiveOnly, (input.Page-1)*input.Limit, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListUsersOutput{
		Users:      responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the closed admin update struct to a user.
// A role change takes effect on the user's next login; outstanding
// tokens keep their issued role snapshot until then.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Organization != nil {
		user.Organization = input.Organization
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User updated: %s", user.Email)
	return user, nil
}

// DeactivateUser soft-deactivates a user. Accounts are never deleted.
func (s *UserService) DeactivateUser(ctx context.Context, actor *models.User, id uuid.UUID) (*models.User, error) {
	if actor.ID == id {
		return nil, ErrCannotDeleteSelf
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Deactivate(ctx, id); err != nil {
		return nil, err
	}
	user.IsActive = false

	log.Printf("✅ User deactivated: %s (by %s)", user.Email, actor.Email)
	return user, nil
}
