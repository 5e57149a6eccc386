package handlers

import (
	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NoteHandler handles team note endpoints
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// Create handles note creation
// @Summary Add team note
// @Description Add a team note to an application. Staff only.
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body services.CreateNoteInput true "Note data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /applications/{id}/notes [post]
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.CreateNoteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Note content is required")
	}

	note, err := h.noteService.Create(c.Context(), user, appID, &input)
	if err != nil {
		return domainError(c, err, "Failed to add note")
	}

	return response.Created(c, "Note added successfully", note.ToResponse())
}

// List handles note listing
// @Summary List team notes
// @Description List team notes of an application. Private notes are only visible to staff.
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /applications/{id}/notes [get]
func (h *NoteHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	notes, err := h.noteService.List(c.Context(), user, appID)
	if err != nil {
		return domainError(c, err, "Failed to list notes")
	}

	items := make([]*models.TeamNoteResponse, 0, len(notes))
	for _, note := range notes {
		items = append(items, note.ToResponse())
	}

	return response.Success(c, "Notes retrieved successfully", items)
}
