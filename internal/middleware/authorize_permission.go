package middleware

import (
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission returns a handler that checks the session user's role
// against PermissionRoles. Unconfigured permission -> 500; role not
// allowed -> 403.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		role := ActorRole(c)
		if role == "" {
			return response.Error(c, "Authorization error", 500, nil)
		}
		roles, ok := constants.PermissionRoles[permission]
		if !ok || len(roles) == 0 {
			return response.Error(c, "Permission configuration error", 500, nil)
		}
		if !constants.AllowedRole(permission, role) {
			return response.Error(c, "User is Forbidden from performing this action", 403, nil)
		}
		return c.Next()
	}
}
