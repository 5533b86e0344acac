package listingevents

import (
	eventsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listingevents"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *eventsvc.Service
}

// GET /api/v1/listing-events/get-listing-events/:listing_id — owner only.
func (h *Handlers) GetListingEvents(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	events, err := h.Service.GetListingEvents(c.Context(), listingID, userID)
	if err != nil {
		statusMap := map[string]int{
			"listing_id is required": 400,
			"Listing not found":      404,
			"Unauthorized":           403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Events fetched successfully", events, nil)
}
