package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two users, optionally in the context
// of a listing. Self-messaging and messaging your own listing are rejected
// at the service layer.
type Message struct {
	MessageID   uuid.UUID      `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`
	ListingID   *uuid.UUID     `gorm:"column:listing_id;type:uuid;index" json:"listing_id"`
	SenderID    uuid.UUID      `gorm:"column:sender_id;type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID      `gorm:"column:recipient_id;type:uuid;not null;index" json:"recipient_id"`
	Content     string         `gorm:"column:content;not null" json:"content"`
	ReadAt      *time.Time     `gorm:"column:read_at" json:"read_at"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string {
	return "Messages"
}

// BeforeCreate sets message_id if not already set.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}
