package errors

import (
	"errors"

	"github.com/Behyna/collect-gateway/internal/constants"
	"github.com/Behyna/collect-gateway/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every error as {"message": ...}. Causes are logged,
// never returned to the caller.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, logger, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(Response{Message: fiberErr.Message})
		}

		logger.Error("Unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(Response{
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, logger *zap.Logger, err service.Error) error {
	status := constants.GetHTTPStatus(err.Code)
	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("code", err.Code),
			zap.String("path", c.Path()),
			zap.Error(err.Cause))

		return c.Status(status).JSON(Response{
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}

	return c.Status(status).JSON(Response{Message: constants.GetErrorMessage(err.Code)})
}
