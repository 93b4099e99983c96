package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"recipe-api/domain"
	"recipe-api/entities"
	"recipe-api/internal/api/presenters"
	"recipe-api/pkg/auth"
)

const userKey = "user"

type (
	Middleware interface {
		AuthMiddleware() fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct {
		gate auth.Gate
	}
)

func NewMiddleware(gate auth.Gate) Middleware {
	return &middleware{gate: gate}
}

// AuthMiddleware rejects the request with 401 unless the bearer token
// resolves to an existing user, which is then stored in the context.
func (m *middleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.ErrUnauthorized.Error(), err)
		}
		c.Locals(userKey, user)
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*entities.User, bool) {
	user, ok := c.Locals(userKey).(*entities.User)
	return user, ok && user != nil
}
