package handlers

import (
	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles dashboard statistics
// @Summary Get dashboard statistics
// @Description Get application statistics inside the caller's visibility scope
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	stats, err := h.dashboardService.Stats(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard statistics")
	}

	return response.Success(c, "Dashboard statistics retrieved successfully", stats)
}
