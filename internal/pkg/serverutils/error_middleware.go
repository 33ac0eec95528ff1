package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pdf-explainer-be/internal/dto"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses so
// controllers can just return them. Validation problems are the client's
// fault, upload failures belong to the backend, everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Message))
		}

		var uploadErr *dto.UploadError
		if errors.As(err, &uploadErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(uploadErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
