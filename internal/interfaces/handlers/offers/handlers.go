package offers

import (
	offersvc "github.com/badaskaptan/kargomarket-sub002/internal/application/offers"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *offersvc.Service
}

var offerStatusMap = map[string]int{
	"listing_id is required":    400,
	"User not found in session": 401,
	"Price must be between 0 and 999999999":        400,
	"Listing not found":                            404,
	"You cannot make an offer on your own listing": 403,
	"Listing is not open for offers":               400,
	"Offer not found":                              404,
	"Unauthorized":                                 403,
	"Offer is not pending":                         400,
}

func mapOfferError(c *fiber.Ctx, err error) error {
	if code, ok := offerStatusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}

// POST /api/v1/offers/create-offer
func (h *Handlers) CreateOffer(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		ListingID   string  `json:"listing_id"`
		Price       float64 `json:"price"`
		Currency    string  `json:"currency"`
		Description string  `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id and price are required", 400, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", 400, nil)
	}

	offer, err := h.Service.CreateOffer(c.Context(), offersvc.CreateOfferInput{
		ListingID:   listingID,
		SenderID:    userID,
		Price:       body.Price,
		Currency:    body.Currency,
		Description: body.Description,
	})
	if err != nil {
		return mapOfferError(c, err)
	}
	return response.SuccessCreated(c, "Offer submitted successfully", offer, nil)
}

// GET /api/v1/offers/get-listing-offers/:listing_id — the listing owner sees
// every offer, anyone else only their own.
func (h *Handlers) GetListingOffers(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", 400, nil)
	}
	offers, err := h.Service.GetListingOffers(c.Context(), listingID, userID)
	if err != nil {
		return mapOfferError(c, err)
	}
	return response.Success(c, "Offers fetched successfully", offers, nil)
}

// GET /api/v1/offers/get-my-offers
func (h *Handlers) GetMyOffers(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	offers, err := h.Service.GetUserOffers(c.Context(), userID)
	if err != nil {
		return mapOfferError(c, err)
	}
	return response.Success(c, "Offers fetched successfully", offers, nil)
}

func (h *Handlers) decide(c *fiber.Ctx, action func(c *fiber.Ctx, offerID, userID uuid.UUID) (interface{}, error), message string) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		OfferID string `json:"offer_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.OfferID == "" {
		return response.Error(c, "offer_id is required", 400, nil)
	}
	offerID, err := uuid.Parse(body.OfferID)
	if err != nil {
		return response.Error(c, "Invalid offer_id", 400, nil)
	}
	result, err := action(c, offerID, userID)
	if err != nil {
		return mapOfferError(c, err)
	}
	return response.Success(c, message, result, nil)
}

// POST /api/v1/offers/accept-offer — listing owner only.
func (h *Handlers) AcceptOffer(c *fiber.Ctx) error {
	return h.decide(c, func(c *fiber.Ctx, offerID, userID uuid.UUID) (interface{}, error) {
		return h.Service.AcceptOffer(c.Context(), offerID, userID)
	}, "Offer accepted")
}

// POST /api/v1/offers/reject-offer — listing owner only.
func (h *Handlers) RejectOffer(c *fiber.Ctx) error {
	return h.decide(c, func(c *fiber.Ctx, offerID, userID uuid.UUID) (interface{}, error) {
		return h.Service.RejectOffer(c.Context(), offerID, userID)
	}, "Offer rejected")
}

// POST /api/v1/offers/withdraw-offer — sender only.
func (h *Handlers) WithdrawOffer(c *fiber.Ctx) error {
	return h.decide(c, func(c *fiber.Ctx, offerID, userID uuid.UUID) (interface{}, error) {
		return h.Service.WithdrawOffer(c.Context(), offerID, userID)
	}, "Offer withdrawn")
}
