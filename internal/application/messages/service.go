package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// SendInput is the message submission body.
type SendInput struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	ListingID   *uuid.UUID
	Content     string
}

// SendMessage delivers a message. Self-messaging is rejected, and when a
// listing is attached the self-interaction guard rejects messaging your own
// listing.
func (s *Service) SendMessage(ctx context.Context, in SendInput) (*domain.Message, error) {
	if in.SenderID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	if in.RecipientID == uuid.Nil {
		return nil, errors.New("recipient_id is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, errors.New("Message content is required")
	}
	if in.SenderID == in.RecipientID {
		return nil, errors.New("You cannot message yourself")
	}

	if in.ListingID != nil {
		var listing domain.Listing
		if err := s.DB.WithContext(ctx).Where("listing_id = ?", *in.ListingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.New("Listing not found")
			}
			return nil, err
		}
		if listing.IsOwnedBy(in.SenderID) {
			return nil, errors.New("You cannot message your own listing")
		}
	}

	msg := &domain.Message{
		ListingID:   in.ListingID,
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Content:     in.Content,
	}
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// GetConversation returns both directions of traffic between two users in
// chronological order.
func (s *Service) GetConversation(ctx context.Context, userID, otherID uuid.UUID) ([]domain.Message, error) {
	if userID == uuid.Nil || otherID == uuid.Nil {
		return nil, errors.New("user_id is required")
	}
	var msgs []domain.Message
	err := s.DB.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead stamps every unread message from otherID to userID.
func (s *Service) MarkRead(ctx context.Context, userID, otherID uuid.UUID) (int64, error) {
	if userID == uuid.Nil || otherID == uuid.Nil {
		return 0, errors.New("user_id is required")
	}
	now := time.Now()
	res := s.DB.WithContext(ctx).Model(&domain.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", otherID, userID).
		Update("read_at", now)
	return res.RowsAffected, res.Error
}
