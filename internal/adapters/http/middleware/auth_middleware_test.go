package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/jwt"
	"caelo-backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// singleUserRepo serves exactly one user record
type singleUserRepo struct {
	user *models.User
}

func (r *singleUserRepo) Create(_ context.Context, _ *models.User) error { return nil }

func (r *singleUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *singleUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *singleUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

func (r *singleUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

func (r *singleUserRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

func (r *singleUserRepo) List(_ context.Context, _ *domain.Role, _ bool, _, _ int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *singleUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func newTestApp(t *testing.T, user *models.User) (*fiber.App, *jwt.Codec) {
	t.Helper()

	codec := jwt.NewCodec("test-secret", "HS256", 30*time.Minute)
	authService := services.NewAuthService(&singleUserRepo{user: user}, password.NewHasher(4), codec)

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(authService), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Email)
	})
	app.Get("/staff", AuthMiddleware(authService), StaffOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", AuthMiddleware(authService), AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, codec
}

func activeUser(role domain.Role) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    string(role) + "@example.com",
		Name:     "Test User",
		Role:     role,
		IsActive: true,
	}
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	app, _ := newTestApp(t, activeUser(domain.RoleBorrower))

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app, _ := newTestApp(t, activeUser(domain.RoleBorrower))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	user := activeUser(domain.RoleBorrower)
	app, codec := newTestApp(t, user)

	token, err := codec.Issue(user.Email, string(user.Role))
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status: got %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestAuthMiddlewareCookie(t *testing.T) {
	user := activeUser(domain.RoleBorrower)
	app, codec := newTestApp(t, user)

	token, err := codec.Issue(user.Email, string(user.Role))
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", "access_token="+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status: got %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestAuthMiddlewareInactiveUser(t *testing.T) {
	user := activeUser(domain.RoleBorrower)
	app, codec := newTestApp(t, user)

	token, err := codec.Issue(user.Email, string(user.Role))
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	// Deactivation cuts off live sessions immediately
	user.IsActive = false

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status: got %d, want %d", resp.StatusCode, fiber.StatusForbidden)
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name string
		role domain.Role
		path string
		want int
	}{
		{"borrower denied staff route", domain.RoleBorrower, "/staff", fiber.StatusForbidden},
		{"analyst allowed staff route", domain.RoleAnalyst, "/staff", fiber.StatusOK},
		{"officer allowed staff route", domain.RoleLoanOfficer, "/staff", fiber.StatusOK},
		{"analyst denied admin route", domain.RoleAnalyst, "/admin", fiber.StatusForbidden},
		{"admin allowed admin route", domain.RoleAdmin, "/admin", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := activeUser(tt.role)
			app, codec := newTestApp(t, user)

			token, err := codec.Issue(user.Email, string(user.Role))
			if err != nil {
				t.Fatalf("failed to issue token: %v", err)
			}

			req := httptest.NewRequest("GET", tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
