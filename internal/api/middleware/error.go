package middleware

import (
	"errors"

	"github.com/Behyna/epay/internal/api/contract"
	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr, logger)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code := constants.ErrCodeInvalidRequestBody
			if fiberErr.Code == fiber.StatusNotFound {
				code = constants.ErrCodeRouteNotFound
			}

			return c.Status(fiberErr.Code).JSON(contract.ResponseError{
				Code:    code,
				Message: fiberErr.Message,
				TrackID: TrackID(c),
			})
		}

		logger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
			TrackID: TrackID(c),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error, logger *zap.Logger) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && err.Code != constants.ErrCodeInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	if status >= fiber.StatusInternalServerError {
		logger.Error("Request failed", zap.String("code", err.Code), zap.Error(err.Cause), zap.String("path", c.Path()))
	}

	return c.Status(status).JSON(contract.ResponseError{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
		TrackID: TrackID(c),
	})
}
