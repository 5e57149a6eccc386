package handlers

import (
	"errors"
	"strings"
	"time"

	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/config"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Role         string  `json:"role" validate:"required"`
	Organization *string `json:"organization"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user account. All violated policy rules come back together in one response.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Email, password, name and role are required")
	}

	input := &services.RegisterInput{
		Email:        strings.TrimSpace(req.Email),
		Password:     req.Password,
		Name:         req.Name,
		Role:         domain.Role(req.Role),
		Organization: req.Organization,
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return response.ValidationFailed(c, verr.Issues)
		}
		return response.InternalServerError(c, "Failed to register user")
	}

	return response.Created(c, "User registered successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Email and password are required")
	}

	input := &services.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		// Unknown email, wrong password and inactive account all land
		// here with the same response
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Incorrect email or password")
		}
		return response.InternalServerError(c, "Failed to login")
	}

	h.setAuthCookie(c, result.AccessToken)

	return response.Success(c, "Login successful", result)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the access token cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearAuthCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// clearAuthCookie clears the access token cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
