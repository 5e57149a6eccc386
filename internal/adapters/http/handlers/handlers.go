package handlers

import (
	"errors"

	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// validate is the shared request body validator
var validate = validator.New()

// parseID reads a UUID path parameter
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// domainError maps domain errors shared by the resource services to
// HTTP responses
func domainError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Not authorized to access this application")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	default:
		return response.InternalServerError(c, fallback)
	}
}
