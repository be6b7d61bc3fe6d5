package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"brocante/internal/services"
)

// UserKey is the Locals key under which the authenticated user is stored.
const UserKey = "user"

// AuthRequired is a Fiber middleware that resolves the bearer token against
// the user store and attaches the user to the request context. Unknown or
// missing tokens short-circuit with 401; the downstream handler never runs.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.UserByToken(parts[1])
		if err != nil {
			log.Printf("Token lookup failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}
