package marketplace

import (
	"strconv"

	listsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	marketsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/marketplace"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *marketsvc.Service
	Listings *listsvc.Service
}

// GET /api/v1/marketplace/listings?q=&type=&mode=&limit= — active listings
// only, filter applied in memory, original ordering preserved.
func (h *Handlers) SearchListings(c *fiber.Ctx) error {
	limit := 0
	if s := c.Query("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}
	// "category" is the frontend's name for the listing type facet.
	listingType := c.Query("type")
	if listingType == "" {
		listingType = c.Query("category")
	}
	listings, err := h.Service.SearchListings(c.Context(), marketsvc.Filter{
		Query:       c.Query("q"),
		ListingType: listingType,
		Mode:        c.Query("mode"),
		Limit:       limit,
	})
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// GET /api/v1/marketplace/listings/:listing_id — public detail view with
// the related load listing summary (null when the reference is stale).
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	listing, err := h.Listings.GetListingByID(c.Context(), listingID)
	if err != nil {
		if err.Error() == "Listing not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	related, err := h.Listings.GetRelatedSummary(c.Context(), listing)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listing fetched successfully", fiber.Map{
		"listing":      listing,
		"related_load": related,
	}, nil)
}
