package serverutils

import (
	"errors"

	"fantasy-hoops-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler writes every error in the BaseResponse envelope. Internal
// causes are logged, never returned.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if appErr, ok := AsAppError(err); ok {
			if appErr.Code >= fiber.StatusInternalServerError {
				log.Error("http", appErr.Message, map[string]interface{}{
					"path":  ctx.Path(),
					"error": errString(appErr.Err),
				})
			}
			if appErr.Field != "" {
				return ctx.Status(appErr.Code).JSON(FieldErrorResponse(appErr.Code, appErr.Message, map[string]string{
					appErr.Field: appErr.Message,
				}))
			}
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}

// ErrorHandlerMiddleware resolves handler errors inside the middleware chain
// so later middleware (tracing, logging) sees the final status.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
