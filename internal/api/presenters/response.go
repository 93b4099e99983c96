package presenters

import (
	"errors"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"recipe-api/domain"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "http").Logger()

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data"`
	}

	ErrorBody struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse renders err under the given status. Server errors never leak
// their cause to the client.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var detail any
	switch {
	case err == nil:
	case status >= fiber.StatusInternalServerError:
		logger.Error().Err(err).Str("path", c.Path()).Msg(message)
		detail = domain.MessageInternalError
	default:
		detail = errorDetail(err)
	}

	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(ErrorBody{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}

// ServiceError renders an error returned by a service with the status its
// kind maps to.
func ServiceError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusForError(err), message, err)
}

func StatusForError(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrValidation), errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorDetail(err error) any {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Namespace()] = fe.Tag()
		}
		return fields
	}
	return err.Error()
}
