package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing event types.
const (
	EventListingCreated   = "created"
	EventListingUpdated   = "updated"
	EventStatusChanged    = "status_changed"
	EventDocumentAttached = "document_attached"
	EventOfferReceived    = "offer_received"
)

// ListingEvent is an append-only activity record against a listing.
type ListingEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ListingID uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data;type:jsonb;not null" json:"event_data"`
	ActorID   *uuid.UUID     `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ListingEvent) TableName() string {
	return "ListingEvents"
}

func (le *ListingEvent) BeforeCreate(tx *gorm.DB) error {
	if le.EventID == uuid.Nil {
		le.EventID = uuid.New()
	}
	return nil
}
