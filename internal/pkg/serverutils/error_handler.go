package serverutils

import (
	"errors"

	"portfolio-ai-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned from handlers into the standard envelope.
// Unknown errors never leak their text.
func ErrorHandlerMiddleware(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(&BaseResponse[map[string]string]{
			Success: false,
			Code:    fiber.StatusBadRequest,
			Message: "Validation failed",
			Data:    validationErr.Fields,
		})
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus()
		return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
