package listings

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/catalog"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/oklog/ulid/v2"
)

// Draft is a listing as submitted by the client, before validation and
// normalization.
type Draft struct {
	ListingType          string     `json:"listing_type"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Origin               string     `json:"origin"`
	Destination          string     `json:"destination"`
	OriginDetails        []byte     `json:"-"`
	DestinationDetails   []byte     `json:"-"`
	LoadType             string     `json:"load_type"`
	WeightValue          *float64   `json:"weight_value"`
	WeightUnit           string     `json:"weight_unit"`
	VolumeValue          *float64   `json:"volume_value"`
	VolumeUnit           string     `json:"volume_unit"`
	LoadingDate          *time.Time `json:"loading_date"`
	DeliveryDate         *time.Time `json:"delivery_date"`
	TransportMode        string     `json:"transport_mode"`
	VehicleType          string     `json:"vehicle_type"`
	OfferType            string     `json:"offer_type"`
	PriceAmount          *float64   `json:"price_amount"`
	PriceCurrency        string     `json:"price_currency"`
	RequiredDocuments    []string   `json:"required_documents"`
	RelatedLoadListingID string     `json:"related_load_listing_id"`
}

// Validate applies all submission rules and collects every failure so the
// UI can highlight each offending field at once. A nil return means the
// draft is submittable.
func (d *Draft) Validate() validation.Errors {
	var errs validation.Errors

	if !constants.IsValidListingType(d.ListingType) {
		errs = errs.Add("listing_type", "Listing type must be load_listing or shipment_request")
	}
	if strings.TrimSpace(d.Title) == "" {
		errs = errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = errs.Add("description", "Description is required")
	}
	if strings.TrimSpace(d.Origin) == "" {
		errs = errs.Add("origin", "Origin is required")
	}
	if strings.TrimSpace(d.Destination) == "" {
		errs = errs.Add("destination", "Destination is required")
	}

	if d.TransportMode == "" {
		errs = errs.Add("transport_mode", "Transport mode is required")
	} else if !constants.IsValidTransportMode(d.TransportMode) {
		errs = errs.Add("transport_mode", "Unknown transport mode")
	} else if d.TransportMode != constants.ModeMultimodal {
		if d.VehicleType == "" {
			errs = errs.Add("vehicle_type", "Vehicle type is required")
		} else if !catalog.IsValidVehicleType(d.TransportMode, d.VehicleType) {
			errs = errs.Add("vehicle_type", fmt.Sprintf("Vehicle type %q is not valid for %s transport", d.VehicleType, d.TransportMode))
		}
		for _, doc := range d.RequiredDocuments {
			if !catalog.IsValidDocument(d.TransportMode, doc) {
				errs = errs.Add("required_documents", fmt.Sprintf("Document %q is not on the %s checklist", doc, d.TransportMode))
			}
		}
	}

	if !constants.IsValidOfferType(d.OfferType) {
		errs = errs.Add("offer_type", "Unknown offer type")
	}
	if d.OfferType == constants.OfferFixedPrice {
		if d.PriceAmount == nil {
			errs = errs.Add("price_amount", "Price is required for fixed price offers")
		} else if !validation.InRange(*d.PriceAmount, 0, constants.MaxPriceAmount) {
			errs = errs.Add("price_amount", "Price must be between 0 and 999999999")
		}
	}

	if d.WeightValue != nil && !validation.InRange(*d.WeightValue, 0, constants.MaxWeightValue) {
		errs = errs.Add("weight_value", "Weight must be between 0 and 999999")
	}
	if d.VolumeValue != nil && !validation.InRange(*d.VolumeValue, 0, constants.MaxVolumeValue) {
		errs = errs.Add("volume_value", "Volume must be between 0 and 999999")
	}

	return errs
}

var listingNoEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// NewListingNo generates the human-readable listing code. A display label,
// not a primary key: timestamp plus entropy, with a unique index as a
// backstop.
func NewListingNo(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), listingNoEntropy)
	return fmt.Sprintf("%s-%s", prefix, id.String())
}
