package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsureClientID stores an id for the calling client in c.Locals("clientID").
// It is read from the X-Client-ID header or the clientId query parameter, and
// generated when the client sends neither.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if clientID is already set
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.NewString()
		}

		c.Locals("clientID", clientID)
		c.Set("X-Client-ID", clientID)
		return c.Next()
	}
}
