package messages

import (
	msgsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/messages"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *msgsvc.Service
}

// POST /api/v1/messages/send-message
func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		RecipientID string `json:"recipient_id"`
		ListingID   string `json:"listing_id"`
		Content     string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil || body.RecipientID == "" {
		return response.Error(c, "recipient_id and content are required", 400, nil)
	}
	recipientID, err := uuid.Parse(body.RecipientID)
	if err != nil {
		return response.Error(c, "Invalid recipient_id", 400, nil)
	}
	var listingID *uuid.UUID
	if body.ListingID != "" {
		id, err := uuid.Parse(body.ListingID)
		if err != nil {
			return response.Error(c, "Invalid listing_id", 400, nil)
		}
		listingID = &id
	}

	msg, err := h.Service.SendMessage(c.Context(), msgsvc.SendInput{
		SenderID:    userID,
		RecipientID: recipientID,
		ListingID:   listingID,
		Content:     body.Content,
	})
	if err != nil {
		statusMap := map[string]int{
			"User not found in session":         401,
			"recipient_id is required":          400,
			"Message content is required":       400,
			"You cannot message yourself":       403,
			"Listing not found":                 404,
			"You cannot message your own listing": 403,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Message sent successfully", msg, nil)
}

// GET /api/v1/messages/get-conversation/:user_id
func (h *Handlers) GetConversation(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	otherID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return response.Error(c, "Invalid user_id format", 400, nil)
	}
	msgs, err := h.Service.GetConversation(c.Context(), userID, otherID)
	if err != nil {
		if err.Error() == "user_id is required" {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Conversation fetched successfully", msgs, nil)
}

// POST /api/v1/messages/mark-read — body: { "user_id": "<sender>" }.
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	userID := middleware.ActorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return response.Error(c, "user_id is required", 400, nil)
	}
	otherID, err := uuid.Parse(body.UserID)
	if err != nil {
		return response.Error(c, "Invalid user_id", 400, nil)
	}
	count, err := h.Service.MarkRead(c.Context(), userID, otherID)
	if err != nil {
		if err.Error() == "user_id is required" {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Messages marked as read", fiber.Map{"updated": count}, nil)
}
