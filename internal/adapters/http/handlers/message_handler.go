package handlers

import (
	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles borrower-lender message endpoints
type MessageHandler struct {
	msgService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(msgService *services.MessageService) *MessageHandler {
	return &MessageHandler{msgService: msgService}
}

// Create handles message sending
// @Summary Send message
// @Description Send a message on an application thread
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body services.CreateMessageInput true "Message data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /applications/{id}/messages [post]
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.CreateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Message content is required")
	}

	msg, err := h.msgService.Create(c.Context(), user, appID, &input)
	if err != nil {
		return domainError(c, err, "Failed to send message")
	}

	return response.Created(c, "Message sent successfully", msg.ToResponse())
}

// List handles message listing
// @Summary List messages
// @Description List messages of an application the caller can access
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /applications/{id}/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	msgs, err := h.msgService.List(c.Context(), user, appID)
	if err != nil {
		return domainError(c, err, "Failed to list messages")
	}

	items := make([]*models.MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		items = append(items, msg.ToResponse())
	}

	return response.Success(c, "Messages retrieved successfully", items)
}

// MarkRead handles marking a message as read
// @Summary Mark message read
// @Description Mark a message as read
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	msg, err := h.msgService.MarkRead(c.Context(), user, id)
	if err != nil {
		return domainError(c, err, "Failed to mark message as read")
	}

	return response.Success(c, "Message marked as read", msg.ToResponse())
}
