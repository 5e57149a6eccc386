package handlers

import (
	"errors"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles admin-only system endpoints
type AdminHandler struct {
	settingsRepo repositories.SettingsRepository
	metricsRepo  repositories.MetricsRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(settingsRepo repositories.SettingsRepository, metricsRepo repositories.MetricsRepository) *AdminHandler {
	return &AdminHandler{
		settingsRepo: settingsRepo,
		metricsRepo:  metricsRepo,
	}
}

// UpsertSettingRequest represents a setting write request body
type UpsertSettingRequest struct {
	Value       string  `json:"value" validate:"required"`
	Description *string `json:"description"`
}

// ListSettings handles settings listing
// @Summary List system settings
// @Description List all system settings. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/settings [get]
func (h *AdminHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.settingsRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list settings")
	}

	return response.Success(c, "Settings retrieved successfully", settings)
}

// GetSetting handles single setting retrieval
// @Summary Get system setting
// @Description Get a system setting by key. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/settings/{key} [get]
func (h *AdminHandler) GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")

	setting, err := h.settingsRepo.GetByKey(c.Context(), key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Setting not found")
		}
		return response.InternalServerError(c, "Failed to get setting")
	}

	return response.Success(c, "Setting retrieved successfully", setting)
}

// UpsertSetting handles setting creation or update
// @Summary Upsert system setting
// @Description Create or update a system setting. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param body body UpsertSettingRequest true "Setting value"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/settings/{key} [put]
func (h *AdminHandler) UpsertSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return response.BadRequest(c, "Setting key is required")
	}

	var req UpsertSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, "Setting value is required")
	}

	setting := &models.SystemSetting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
	}

	if err := h.settingsRepo.Upsert(c.Context(), setting); err != nil {
		return response.InternalServerError(c, "Failed to save setting")
	}

	return response.Success(c, "Setting saved successfully", setting)
}

// LatestMetrics handles latest metrics snapshot retrieval
// @Summary Get latest metrics snapshot
// @Description Get the most recent daily application metrics snapshot. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/metrics/latest [get]
func (h *AdminHandler) LatestMetrics(c *fiber.Ctx) error {
	metric, err := h.metricsRepo.GetLatest(c.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "No metrics snapshot recorded yet")
		}
		return response.InternalServerError(c, "Failed to get metrics snapshot")
	}

	return response.Success(c, "Metrics snapshot retrieved successfully", metric)
}
