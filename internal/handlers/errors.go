package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"crowdfunding-service/internal/services"
)

// errorResponse is the envelope returned for every failed request.
type errorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// validationErrorResponse adds the per-field messages to the envelope.
type validationErrorResponse struct {
	errorResponse
	FieldErrors map[string]string `json:"fieldErrors"`
}

func writeError(c *fiber.Ctx, status int, title, message string) error {
	return c.Status(status).JSON(errorResponse{
		Status:    status,
		Error:     title,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func writeValidationError(c *fiber.Ctx, fieldErrors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(validationErrorResponse{
		errorResponse: errorResponse{
			Status:    fiber.StatusBadRequest,
			Error:     "Validation error",
			Message:   "Invalid fields in request",
			Timestamp: time.Now(),
		},
		FieldErrors: fieldErrors,
	})
}

// writeDomainError maps a service failure onto the HTTP error taxonomy.
// Unrecognized errors become a 500 with a generic message; the detail is
// only logged.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		return writeError(c, fiber.StatusNotFound, "Resource not found", err.Error())
	case errors.Is(err, services.ErrDuplicateTitle),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrUnsupportedImage):
		return writeError(c, fiber.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDeadlinePassed):
		return writeError(c, fiber.StatusConflict, "Operation not allowed", err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		return writeError(c, fiber.StatusInternalServerError, "Internal server error",
			"An unexpected error occurred. Try again later.")
	}
}
