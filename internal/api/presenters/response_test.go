package presenters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/domain"
	"recipe-api/internal/utils"
)

func TestStatusForError(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}
	validationErr := utils.NewValidator().Struct(payload{})
	require.Error(t, validationErr)

	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{domain.ErrUnauthorizedRecipeAccess, fiber.StatusForbidden},
		{domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{fmt.Errorf("loading: %w", domain.ErrUserNotFound), fiber.StatusNotFound},
		{domain.ErrEmailAlreadyRegistered, fiber.StatusBadRequest},
		{domain.ValidationError("bad"), fiber.StatusBadRequest},
		{validationErr, fiber.StatusBadRequest},
		{errors.New("database is on fire"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StatusForError(tc.err), tc.err.Error())
	}
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponse(c, []string{}, fiber.StatusOK, "fine")
	})
	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return ServiceError(c, "nope", domain.ErrUnauthorized)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return ServiceError(c, "failed", errors.New("secret connection string"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	body := decode(t, resp.Body)
	assert.Equal(t, true, body["status"])
	assert.Equal(t, []any{}, body["data"])

	resp, err = app.Test(httptest.NewRequest("GET", "/unauthorized", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	body = decode(t, resp.Body)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "could not validate credentials", body["error"])

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body = decode(t, resp.Body)
	assert.Equal(t, domain.MessageInternalError, body["error"])
}
