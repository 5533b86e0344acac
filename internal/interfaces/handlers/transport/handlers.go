package transport

import (
	"errors"
	"strings"

	transportsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/transport"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *transportsvc.Service
}

// POST /api/v1/transport-services/create-service
func (h *Handlers) CreateService(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var draft transportsvc.Draft
	if err := c.BodyParser(&draft); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	svc, err := h.Service.CreateService(c.Context(), userID, draft)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return err
		}
		if err.Error() == "User not found in session" {
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Transport service created successfully", svc, nil)
}

// GET /api/v1/transport-services/get-my-services
func (h *Handlers) GetMyServices(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	services, err := h.Service.GetUserServices(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Transport services fetched successfully", services, nil)
}

// GET /api/v1/transport-services/get-service/:service_id
func (h *Handlers) GetServiceByID(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("service_id"))
	if err != nil {
		return response.Error(c, "Invalid service_id format", 400, nil)
	}
	svc, err := h.Service.GetServiceByID(c.Context(), serviceID)
	if err != nil {
		switch err.Error() {
		case "service_id is required":
			return response.Error(c, err.Error(), 400, nil)
		case "Transport service not found":
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Transport service fetched successfully", svc, nil)
}

// PUT /api/v1/transport-services/edit-service
func (h *Handlers) EditService(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		ServiceID string `json:"service_id"`
		transportsvc.UpdateInput
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.ServiceID == "" {
		return response.Error(c, "Missing service_id", 400, nil)
	}
	serviceID, err := uuid.Parse(body.ServiceID)
	if err != nil {
		return response.Error(c, "Invalid service_id", 400, nil)
	}

	svc, err := h.Service.EditService(c.Context(), serviceID, userID, body.UpdateInput)
	if err != nil {
		statusMap := map[string]int{
			"Unknown transport mode":              400,
			"Unknown status":                      400,
			"No valid changes provided":           400,
			"IMO number must be exactly 7 digits": 400,
			"MMSI number must be exactly 9 digits": 400,
			"Capacity must be between 0 and 999999": 400,
			"Transport service not found":         404,
			"Unauthorized service edit":           403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		if strings.Contains(err.Error(), "is not valid for") || strings.Contains(err.Error(), "is not on the") {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Transport service updated successfully", svc, nil)
}

// DELETE /api/v1/transport-services/delete-service/:service_id — idempotent.
func (h *Handlers) DeleteService(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	serviceID, err := uuid.Parse(c.Params("service_id"))
	if err != nil {
		return response.Error(c, "Invalid service_id", 400, nil)
	}
	if err := h.Service.DeleteService(c.Context(), serviceID, userID); err != nil {
		statusMap := map[string]int{
			"Missing service_id":          400,
			"Unauthorized service delete": 403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Transport service deleted successfully", nil, nil)
}
