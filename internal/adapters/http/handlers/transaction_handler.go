package handlers

import (
	"caelo-backend/internal/adapters/http/middleware"
	"caelo-backend/internal/core/services"
	"caelo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles application transaction endpoints
type TransactionHandler struct {
	txnService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// Create handles transaction recording
// @Summary Record transaction
// @Description Record a financial transaction against an application. Staff only.
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body services.CreateTransactionInput true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /applications/{id}/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Transaction date, type, category, description and amount are required")
	}

	txn, err := h.txnService.Create(c.Context(), user, appID, &input)
	if err != nil {
		return domainError(c, err, "Failed to record transaction")
	}

	return response.Created(c, "Transaction recorded successfully", txn)
}

// List handles transaction listing
// @Summary List transactions
// @Description List transactions of an application the caller can access
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /applications/{id}/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	appID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	txns, err := h.txnService.List(c.Context(), user, appID)
	if err != nil {
		return domainError(c, err, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", txns)
}
