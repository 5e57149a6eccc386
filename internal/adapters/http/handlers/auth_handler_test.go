package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/config"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/jwt"
	"caelo-backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memUserRepo is an in-memory UserRepository for handler tests
type memUserRepo struct {
	users map[string]*models.User
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, u := range r.users {
		if u.ID == id {
			u.LastLogin = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.IsActive = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memUserRepo) List(_ context.Context, role *domain.Role, activeOnly bool, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		if role != nil && u.Role != *role {
			continue
		}
		if activeOnly && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func newAuthTestApp(t *testing.T, repo *memUserRepo) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", Algorithm: "HS256", AccessTokenMins: 30},
	}
	hasher := password.NewHasher(4)
	codec := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTokenTTL())
	handler := NewAuthHandler(services.NewAuthService(repo, hasher, codec), cfg)

	app := fiber.New()
	app.Post("/auth/login", handler.Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, email, pw string) *http.Response {
	t.Helper()

	body, err := json.Marshal(LoginRequest{Email: email, Password: pw})
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestLoginPreservesEmailCase(t *testing.T) {
	repo := &memUserRepo{users: make(map[string]*models.User)}
	hasher := password.NewHasher(4)
	hash, err := hasher.Hash("Correct1pw")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo.users["Casey@Example.com"] = &models.User{
		ID:           uuid.New(),
		Email:        "Casey@Example.com",
		PasswordHash: hash,
		Name:         "Casey Seed",
		Role:         domain.RoleBorrower,
		IsActive:     true,
	}
	app := newAuthTestApp(t, repo)

	// The submitted email must reach the store verbatim: the exact
	// casing logs in, any other casing does not
	resp := postLogin(t, app, "Casey@Example.com", "Correct1pw")
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("exact-case login: got status %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	resp = postLogin(t, app, "casey@example.com", "Correct1pw")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("lowercased login: got status %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}
