package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Authorize returns a middleware that allows only users holding one of roles. It must run after Authenticate.
func Authorize(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return AuthError("Authentication required")
		}
		if !user.HasRole(roles...) {
			return ForbiddenError("Insufficient permissions")
		}
		return c.Next()
	}
}
