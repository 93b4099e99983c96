package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"recipe-api/domain"
)

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, key string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ValidationError("%s must be a positive integer", key)
	}
	return uint(id), nil
}
