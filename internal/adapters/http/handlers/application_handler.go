package handlers

import (
	"time"

	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ApplicationHandler handles loan application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Create handles application submission
// @Summary Submit loan application
// @Description Submit a new loan application for the calling user
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input services.CreateApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Business name, type, loan amount and purpose are required")
	}

	app, err := h.appService.Create(c.Context(), user, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create application")
	}

	return response.Created(c, "Application submitted successfully", app.ToResponse())
}

// List handles application listing
// @Summary List loan applications
// @Description List applications visible to the calling user, with optional filters
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param min_amount query number false "Minimum loan amount"
// @Param max_amount query number false "Maximum loan amount"
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filters, err := parseApplicationFilters(c)
	if err != nil {
		return response.BadRequest(c, "Invalid filter parameters")
	}

	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 20)

	result, err := h.appService.List(c.Context(), user, filters, page, size)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", result)
}

// Get handles single application retrieval
// @Summary Get loan application
// @Description Get a single application the calling user can access
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.Get(c.Context(), user, id)
	if err != nil {
		return domainError(c, err, "Failed to get application")
	}

	return response.Success(c, "Application retrieved successfully", app.ToResponse())
}

// Update handles application updates
// @Summary Update loan application
// @Description Update the mutable fields of an application
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body services.UpdateApplicationInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.UpdateApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.appService.Update(c.Context(), user, id, &input)
	if err != nil {
		return domainError(c, err, "Failed to update application")
	}

	return response.Success(c, "Application updated successfully", app.ToResponse())
}

// Delete handles application deletion
// @Summary Delete loan application
// @Description Delete an application. Admin only.
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	if err := h.appService.Delete(c.Context(), user, id); err != nil {
		return domainError(c, err, "Failed to delete application")
	}

	return response.Success(c, "Application deleted successfully", nil)
}

// parseApplicationFilters reads the optional list filters from the query
// string
func parseApplicationFilters(c *fiber.Ctx) (*repositories.ApplicationFilters, error) {
	filters := &repositories.ApplicationFilters{}

	if v := c.Query("status"); v != "" {
		status := domain.ApplicationStatus(v)
		if !status.Valid() {
			return nil, domain.ErrInvalidInput
		}
		filters.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.ApplicationPriority(v)
		if !priority.Valid() {
			return nil, domain.ErrInvalidInput
		}
		filters.Priority = &priority
	}
	if v := c.Query("borrower_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		filters.BorrowerID = &id
	}
	if v := c.Query("loan_officer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		filters.LoanOfficerID = &id
	}
	if v := c.QueryFloat("min_amount", -1); v >= 0 {
		filters.MinAmount = &v
	}
	if v := c.QueryFloat("max_amount", -1); v >= 0 {
		filters.MaxAmount = &v
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		filters.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		filters.DateTo = &t
	}

	return filters, nil
}
