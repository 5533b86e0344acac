package user

import (
	usersvc "github.com/badaskaptan/kargomarket-sub002/internal/application/user"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *usersvc.Service
}

// GET /api/v1/users/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	u, err := h.Service.GetProfile(c.Context(), userID)
	if err != nil {
		if err.Error() == "User not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Profile fetched successfully", u, nil)
}

// PUT /api/v1/users/profile — body is a map of field -> value; only
// fullname, phone, company_name and password are accepted.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil || len(fields) == 0 {
		return response.Error(c, "No fields to update", 400, nil)
	}

	u, err := h.Service.UpdateProfile(c.Context(), userID, fields)
	if err != nil {
		statusMap := map[string]int{
			"Missing update fields":                 400,
			"No valid update fields provided":       400,
			"Full name must be a non-empty string":  400,
			"Full name contains invalid characters": 400,
			"Invalid password format":               400,
			"User not found":                        404,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Profile updated successfully", u, nil)
}
