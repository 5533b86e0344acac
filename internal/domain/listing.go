package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing is a posted load listing or shipment request. Transport services
// live in their own table (TransportService) because they carry
// mode-specific identity fields.
type Listing struct {
	ListingID            uuid.UUID      `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	ListingNo            string         `gorm:"column:listing_no;type:varchar(32);not null;uniqueIndex" json:"listing_no"`
	UserID               uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ListingType          string         `gorm:"column:listing_type;type:varchar(20);not null" json:"listing_type"`
	Title                string         `gorm:"column:title;not null" json:"title"`
	Description          string         `gorm:"column:description;not null" json:"description"`
	Origin               string         `gorm:"column:origin;not null" json:"origin"`
	Destination          string         `gorm:"column:destination;not null" json:"destination"`
	OriginDetails        datatypes.JSON `gorm:"column:origin_details;type:jsonb" json:"origin_details"`
	DestinationDetails   datatypes.JSON `gorm:"column:destination_details;type:jsonb" json:"destination_details"`
	LoadType             string         `gorm:"column:load_type" json:"load_type"`
	WeightValue          *float64       `gorm:"column:weight_value;type:decimal(12,2)" json:"weight_value"`
	WeightUnit           string         `gorm:"column:weight_unit;type:varchar(10)" json:"weight_unit"`
	VolumeValue          *float64       `gorm:"column:volume_value;type:decimal(12,2)" json:"volume_value"`
	VolumeUnit           string         `gorm:"column:volume_unit;type:varchar(10)" json:"volume_unit"`
	LoadingDate          *time.Time     `gorm:"column:loading_date" json:"loading_date"`
	DeliveryDate         *time.Time     `gorm:"column:delivery_date" json:"delivery_date"`
	TransportMode        string         `gorm:"column:transport_mode;type:varchar(20);not null" json:"transport_mode"`
	VehicleType          string         `gorm:"column:vehicle_type;type:varchar(60)" json:"vehicle_type"`
	OfferType            string         `gorm:"column:offer_type;type:varchar(20);not null" json:"offer_type"`
	PriceAmount          *float64       `gorm:"column:price_amount;type:decimal(18,2)" json:"price_amount"`
	PriceCurrency        string         `gorm:"column:price_currency;type:char(3)" json:"price_currency"`
	RequiredDocuments    StringList     `gorm:"column:required_documents;type:json" json:"required_documents"`
	DocumentURLs         StringList     `gorm:"column:document_urls;type:json" json:"document_urls"`
	ImageURLs            StringList     `gorm:"column:image_urls;type:json" json:"image_urls"`
	RelatedLoadListingID *uuid.UUID     `gorm:"column:related_load_listing_id;type:uuid" json:"related_load_listing_id"`
	Status               string         `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Listing) TableName() string {
	return "Listings"
}

// BeforeCreate sets listing_id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether userID owns this listing. The self-interaction
// guard for offers and messages keys off this.
func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.UserID != uuid.Nil && l.UserID == userID
}
