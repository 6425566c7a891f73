package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error that knows its HTTP status and the message that is
// safe to show to the caller. Err holds the internal cause for logging.
type AppError struct {
	Code    int
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// OnField attaches the form field the message refers to.
func (e *AppError) OnField(field string) *AppError {
	e.Field = field
	return e
}

func BadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(fiber.StatusConflict, message, nil)
}

func Internal(message string, cause error) *AppError {
	return NewAppError(fiber.StatusInternalServerError, message, cause)
}

func Unavailable(message string, cause error) *AppError {
	return NewAppError(fiber.StatusServiceUnavailable, message, cause)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
