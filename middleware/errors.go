package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindForbidden  ErrorKind = "forbidden"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindRateLimit  ErrorKind = "rate_limit"
)

// AppError is an expected failure that is reported to the client as-is.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Fields  map[string]string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func ValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Status: fiber.StatusBadRequest, Message: message}
}

// ValidationFields reports per-field messages.
func ValidationFields(fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Status: fiber.StatusBadRequest, Message: "Validation failed", Fields: fields}
}

func AuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Status: fiber.StatusUnauthorized, Message: message}
}

func ForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Status: fiber.StatusForbidden, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Status: fiber.StatusNotFound, Message: message}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Status: fiber.StatusConflict, Message: message}
}

func RateLimitError(message string) *AppError {
	return &AppError{Kind: KindRateLimit, Status: fiber.StatusTooManyRequests, Message: message}
}

// ErrorHandler is installed as fiber's ErrorHandler. Anything that is not an AppError or a
// fiber.Error is logged and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := fiber.Map{"success": false, "error": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		return c.Status(appErr.Status).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"success": false, "error": fiberErr.Message})
	}

	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}
