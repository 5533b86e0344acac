package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransportService is a carrier's offered capacity. It shares the
// mode/vehicle taxonomy with Listing but carries mode-specific identity
// fields: plate number for road, ship identity for sea, flight for air,
// train for rail.
type TransportService struct {
	ServiceID          uuid.UUID      `gorm:"column:service_id;type:uuid;primaryKey" json:"service_id"`
	ServiceNo          string         `gorm:"column:service_no;type:varchar(32);not null;uniqueIndex" json:"service_no"`
	UserID             uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	Description        string         `gorm:"column:description" json:"description"`
	TransportMode      string         `gorm:"column:transport_mode;type:varchar(20);not null" json:"transport_mode"`
	VehicleType        string         `gorm:"column:vehicle_type;type:varchar(60)" json:"vehicle_type"`
	Origin             string         `gorm:"column:origin" json:"origin"`
	Destination        string         `gorm:"column:destination" json:"destination"`
	AvailableFromDate  *time.Time     `gorm:"column:available_from_date" json:"available_from_date"`
	AvailableUntilDate *time.Time     `gorm:"column:available_until_date" json:"available_until_date"`
	CapacityValue      *float64       `gorm:"column:capacity_value;type:decimal(12,2)" json:"capacity_value"`
	CapacityUnit       string         `gorm:"column:capacity_unit;type:varchar(10)" json:"capacity_unit"`

	// Road
	PlateNumber string `gorm:"column:plate_number;type:varchar(20)" json:"plate_number"`
	// Sea — IMO exactly 7 digits, MMSI exactly 9 digits when present.
	ShipName   string   `gorm:"column:ship_name" json:"ship_name"`
	IMONumber  string   `gorm:"column:imo_number;type:varchar(7)" json:"imo_number"`
	MMSINumber string   `gorm:"column:mmsi_number;type:varchar(9)" json:"mmsi_number"`
	DWTTonnage *float64 `gorm:"column:dwt_tonnage;type:decimal(12,2)" json:"dwt_tonnage"`
	// Air
	FlightNumber string `gorm:"column:flight_number;type:varchar(10)" json:"flight_number"`
	AircraftType string `gorm:"column:aircraft_type" json:"aircraft_type"`
	// Rail
	TrainNumber string `gorm:"column:train_number;type:varchar(20)" json:"train_number"`
	WagonCount  *int   `gorm:"column:wagon_count" json:"wagon_count"`

	RequiredDocuments StringList     `gorm:"column:required_documents;type:json" json:"required_documents"`
	DocumentURLs      StringList     `gorm:"column:document_urls;type:json" json:"document_urls"`
	ImageURLs         StringList     `gorm:"column:image_urls;type:json" json:"image_urls"`
	Status            string         `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TransportService) TableName() string {
	return "TransportServices"
}

// BeforeCreate sets service_id if not already set.
func (t *TransportService) BeforeCreate(tx *gorm.DB) error {
	if t.ServiceID == uuid.Nil {
		t.ServiceID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether userID owns this service.
func (t *TransportService) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID != uuid.Nil && t.UserID == userID
}
