package middleware

import (
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with the
// standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// ActorUserID returns the authenticated user's id from the session, or
// uuid.Nil when absent or malformed.
func ActorUserID(c *fiber.Ctx) uuid.UUID {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return uuid.Nil
	}
	s, _ := m["user_id"].(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ActorRole returns the authenticated user's role from the session.
func ActorRole(c *fiber.Ctx) string {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return ""
	}
	r, _ := m["role"].(string)
	return r
}
