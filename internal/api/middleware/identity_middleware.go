package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// IdentityMiddleware trusts the authenticated user id injected by the
// upstream gateway. Authentication itself happens before requests reach this
// service; a request without an identity header never gets further.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing user identity",
			})
		}
		if id, err := strconv.ParseInt(userID, 10, 64); err != nil || id <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user identity",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
