package services

import (
	"context"
	"errors"
	"testing"

	"caelo-backend/internal/core/domain"

	"github.com/google/uuid"
)

func TestUpdateUserEmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "first@example.com", "Correct1pw", domain.RoleBorrower, true)
	target := seedUser(t, repo, "second@example.com", "Correct1pw", domain.RoleBorrower, true)
	svc := NewUserService(repo)

	taken := "first@example.com"
	if _, err := svc.UpdateUser(context.Background(), target.ID, &UpdateUserInput{Email: &taken}); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("got %v, want ErrEmailAlreadyExists", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	repo := newStubUserRepo()
	target := seedUser(t, repo, "promote@example.com", "Correct1pw", domain.RoleBorrower, true)
	svc := NewUserService(repo)

	bad := domain.Role("emperor")
	if _, err := svc.UpdateUser(context.Background(), target.ID, &UpdateUserInput{Role: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("invalid role: got %v, want ErrInvalidInput", err)
	}

	analyst := domain.RoleAnalyst
	updated, err := svc.UpdateUser(context.Background(), target.ID, &UpdateUserInput{Role: &analyst})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Role != domain.RoleAnalyst {
		t.Errorf("role: got %q, want %q", updated.Role, domain.RoleAnalyst)
	}
}

func TestDeactivateUser(t *testing.T) {
	repo := newStubUserRepo()
	admin := seedUser(t, repo, "admin@example.com", "Correct1pw", domain.RoleAdmin, true)
	target := seedUser(t, repo, "target@example.com", "Correct1pw", domain.RoleBorrower, true)
	svc := NewUserService(repo)

	// Self-deactivation is blocked so the last admin cannot lock the
	// system out
	if _, err := svc.DeactivateUser(context.Background(), admin, admin.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Errorf("self-deactivation: got %v, want ErrCannotDeleteSelf", err)
	}

	user, err := svc.DeactivateUser(context.Background(), admin, target.ID)
	if err != nil {
		t.Fatalf("DeactivateUser returned error: %v", err)
	}
	if user.IsActive {
		t.Error("user must be inactive after deactivation")
	}

	if _, err := svc.DeactivateUser(context.Background(), admin, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user: got %v, want ErrUserNotFound", err)
	}
}
