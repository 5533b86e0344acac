package listings

import (
	"errors"
	"strings"

	listsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	"github.com/badaskaptan/kargomarket-sub002/internal/application/uploads"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
}

// POST /api/v1/listings/create-listing — 201 with the created listing.
// Validation failures surface through the global error handler as a 400
// with per-field details.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var draft listsvc.Draft
	if err := c.BodyParser(&draft); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	listing, err := h.Service.CreateListing(c.Context(), userID, draft)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return err
		}
		statusMap := map[string]int{
			"User not found in session":                               401,
			"Transport services are created through the transport services module": 400,
			"Only shipment requests may reference a load listing":     400,
			"Invalid related_load_listing_id":                          400,
			"Related load listing not found":                           404,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GET /api/v1/listings/get-my-listings
func (h *Handlers) GetMyListings(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	listings, err := h.Service.GetUserListings(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// GET /api/v1/listings/get-listing/:listing_id — includes the related load
// listing summary when one is referenced; a stale reference yields null.
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	listing, err := h.Service.GetListingByID(c.Context(), listingID)
	if err != nil {
		switch err.Error() {
		case "listing_id is required":
			return response.Error(c, err.Error(), 400, nil)
		case "Listing not found":
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	related, err := h.Service.GetRelatedSummary(c.Context(), listing)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing fetched successfully", fiber.Map{
		"listing":      listing,
		"related_load": related,
	}, nil)
}

// PUT /api/v1/listings/edit-listing — partial update; body carries
// listing_id plus the changed fields.
func (h *Handlers) EditListing(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		ListingID string `json:"listing_id"`
		listsvc.UpdateInput
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if body.ListingID == "" {
		return response.Error(c, "Missing listing_id", 400, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", 400, nil)
	}

	listing, err := h.Service.EditListing(c.Context(), listingID, userID, body.UpdateInput)
	if err != nil {
		statusMap := map[string]int{
			"Missing listing_id":        400,
			"Unknown transport mode":    400,
			"Unknown offer type":        400,
			"No valid changes provided": 400,
			"Weight must be between 0 and 999999":    400,
			"Volume must be between 0 and 999999":    400,
			"Price must be between 0 and 999999999":  400,
			"Listing not found":         404,
			"Unauthorized listing edit": 403,
			"Listing is not editable":   400,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		if strings.Contains(err.Error(), "is not valid for") || strings.Contains(err.Error(), "is not on the") {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing updated successfully", listing, nil)
}

// DELETE /api/v1/listings/delete-listing/:listing_id — idempotent.
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id", 400, nil)
	}
	if err := h.Service.DeleteListing(c.Context(), listingID, userID); err != nil {
		statusMap := map[string]int{
			"Missing listing_id":          400,
			"Unauthorized listing delete": 403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing deleted successfully", nil, nil)
}

// POST /api/v1/listings/update-status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		ListingID string `json:"listing_id"`
		Status    string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" || body.Status == "" {
		return response.Error(c, "listing_id and status are required", 400, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", 400, nil)
	}

	listing, err := h.Service.UpdateStatus(c.Context(), listingID, userID, body.Status)
	if err != nil {
		statusMap := map[string]int{
			"Unknown status":             400,
			"Listing not found":          404,
			"Unauthorized status change": 403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		if strings.Contains(err.Error(), "Cannot change status") {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Status updated successfully", listing, nil)
}

// POST /api/v1/listings/attach-documents — multipart form with listing_id
// field and one or more "files" parts. Files upload one at a time; failures
// are reported per file and never fail the batch.
func (h *Handlers) AttachDocuments(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, "Multipart form is required", 400, nil)
	}
	listingIDStr := c.FormValue("listing_id")
	if listingIDStr == "" {
		return response.Error(c, "Missing listing_id", 400, nil)
	}
	listingID, err := uuid.Parse(listingIDStr)
	if err != nil {
		return response.Error(c, "Invalid listing_id", 400, nil)
	}

	files, err := uploads.FilesFromMultipart(form.File["files"])
	if err != nil {
		return response.Error(c, "Failed to read uploaded files", 400, nil)
	}
	if len(files) == 0 {
		return response.Error(c, "No files provided", 400, nil)
	}

	res, listing, err := h.Service.AttachDocuments(c.Context(), listingID, userID, files)
	if err != nil {
		statusMap := map[string]int{
			"Uploads are not configured": 503,
			"Listing not found":          404,
			"Unauthorized listing edit":  403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Documents processed", fiber.Map{
		"result":  res,
		"listing": listing,
	}, nil)
}
