package handlers

import (
	"errors"

	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/pagination"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles user listing
// @Summary List users
// @Description List user accounts with pagination. Staff only.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param role query string false "Filter by role"
// @Param active_only query bool false "Only active accounts"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListUsersInput{
		Page:       params.Page,
		Limit:      params.Limit,
		ActiveOnly: c.QueryBool("active_only", false),
	}

	if v := c.Query("role"); v != "" {
		role := domain.Role(v)
		if !role.Valid() {
			return response.BadRequest(c, "Invalid role filter")
		}
		input.Role = &role
	}

	result, err := h.userService.ListUsers(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// Get handles single user retrieval
// @Summary Get user
// @Description Get a single user account. Staff only.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// Update handles user updates
// @Summary Update user
// @Description Update a user account. Admin only.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateUser(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email address is already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid input")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", user.ToResponse())
}

// Deactivate handles user deactivation
// @Summary Deactivate user
// @Description Deactivate a user account. Accounts are never deleted, only deactivated. Admin only.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.DeactivateUser(c.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.BadRequest(c, "You cannot deactivate your own account")
		default:
			return response.InternalServerError(c, "Failed to deactivate user")
		}
	}

	return response.Success(c, "User deactivated successfully", user.ToResponse())
}
