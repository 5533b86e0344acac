package constants

// Listing types.
const (
	LoadListing      = "load_listing"
	ShipmentRequest  = "shipment_request"
	TransportService = "transport_service"
)

// ValidListingTypes is the set of allowed listing_type values.
var ValidListingTypes = []string{LoadListing, ShipmentRequest, TransportService}

// Transport modes.
const (
	ModeRoad       = "road"
	ModeSea        = "sea"
	ModeAir        = "air"
	ModeRail       = "rail"
	ModeMultimodal = "multimodal"
)

// ValidTransportModes is the set of allowed transport_mode values.
// Multimodal is accepted at listing level but has no vehicle/document catalog.
var ValidTransportModes = []string{ModeRoad, ModeSea, ModeAir, ModeRail, ModeMultimodal}

// Offer types.
const (
	OfferDirect     = "direct"
	OfferFixedPrice = "fixed_price"
	OfferNegotiable = "negotiable"
	OfferAuction    = "auction"
	OfferFreeQuote  = "free_quote"
)

// ValidOfferTypes is the set of allowed offer_type values.
var ValidOfferTypes = []string{OfferDirect, OfferFixedPrice, OfferNegotiable, OfferAuction, OfferFreeQuote}

// Listing statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// ValidListingStatuses is the set of allowed listing status values.
var ValidListingStatuses = []string{StatusDraft, StatusActive, StatusPaused, StatusCompleted, StatusCancelled, StatusExpired}

// Offer statuses.
const (
	OfferPending   = "pending"
	OfferAccepted  = "accepted"
	OfferRejected  = "rejected"
	OfferWithdrawn = "withdrawn"
)

// Numeric bounds applied before submission.
const (
	MaxWeightValue = 999999
	MaxVolumeValue = 999999
	MaxPriceAmount = 999999999
)

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidListingType returns true if v is one of the allowed listing types.
func IsValidListingType(v string) bool { return contains(ValidListingTypes, v) }

// IsValidTransportMode returns true if v is one of the allowed transport modes.
func IsValidTransportMode(v string) bool { return contains(ValidTransportModes, v) }

// IsValidOfferType returns true if v is one of the allowed offer types.
func IsValidOfferType(v string) bool { return contains(ValidOfferTypes, v) }

// IsValidListingStatus returns true if v is one of the allowed statuses.
func IsValidListingStatus(v string) bool { return contains(ValidListingStatuses, v) }
