package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer is a bid submitted by one user against another's listing.
// Lifecycle: pending -> accepted|rejected (listing owner) or withdrawn (sender).
type Offer struct {
	OfferID      uuid.UUID      `gorm:"column:offer_id;type:uuid;primaryKey" json:"offer_id"`
	ListingID    uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	SenderID     uuid.UUID      `gorm:"column:sender_id;type:uuid;not null;index" json:"sender_id"`
	Price        float64        `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Currency     string         `gorm:"column:currency;type:char(3);default:'TRY'" json:"currency"`
	Description  string         `gorm:"column:description" json:"description"`
	DocumentURLs StringList     `gorm:"column:document_urls;type:json" json:"document_urls"`
	Status       string         `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Offer) TableName() string {
	return "Offers"
}

// BeforeCreate sets offer_id if not already set.
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.OfferID == uuid.Nil {
		o.OfferID = uuid.New()
	}
	return nil
}
