package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/badaskaptan/kargomarket-sub002/internal/application/uploads"
	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/catalog"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB      *gorm.DB
	Uploads *uploads.Service
}

// CreateListing validates the draft (collect-all) and persists it. No write
// is attempted when validation fails.
func (s *Service) CreateListing(ctx context.Context, userID uuid.UUID, d Draft) (*domain.Listing, error) {
	if userID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	if d.ListingType == constants.TransportService {
		return nil, errors.New("Transport services are created through the transport services module")
	}
	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs
	}

	var related *uuid.UUID
	if d.RelatedLoadListingID != "" {
		if d.ListingType != constants.ShipmentRequest {
			return nil, errors.New("Only shipment requests may reference a load listing")
		}
		id, err := uuid.Parse(d.RelatedLoadListingID)
		if err != nil {
			return nil, errors.New("Invalid related_load_listing_id")
		}
		// Weak reference: the target may be deleted later, but it must exist
		// and be a load listing at creation time.
		var target domain.Listing
		if err := s.DB.WithContext(ctx).Where("listing_id = ? AND listing_type = ?", id, constants.LoadListing).First(&target).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.New("Related load listing not found")
			}
			return nil, err
		}
		related = &id
	}

	prefix := "LL"
	if d.ListingType == constants.ShipmentRequest {
		prefix = "SR"
	}

	listing := &domain.Listing{
		ListingNo:            NewListingNo(prefix),
		UserID:               userID,
		ListingType:          d.ListingType,
		Title:                d.Title,
		Description:          d.Description,
		Origin:               d.Origin,
		Destination:          d.Destination,
		OriginDetails:        datatypes.JSON(d.OriginDetails),
		DestinationDetails:   datatypes.JSON(d.DestinationDetails),
		LoadType:             d.LoadType,
		WeightValue:          d.WeightValue,
		WeightUnit:           d.WeightUnit,
		VolumeValue:          d.VolumeValue,
		VolumeUnit:           d.VolumeUnit,
		LoadingDate:          d.LoadingDate,
		DeliveryDate:         d.DeliveryDate,
		TransportMode:        d.TransportMode,
		VehicleType:          d.VehicleType,
		OfferType:            d.OfferType,
		PriceAmount:          d.PriceAmount,
		PriceCurrency:        d.PriceCurrency,
		RequiredDocuments:    domain.NewStringList(d.RequiredDocuments),
		RelatedLoadListingID: related,
		Status:               constants.StatusActive,
	}

	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, fmt.Errorf("Failed to create listing: %v", err)
	}
	s.recordEvent(ctx, listing.ListingID, domain.EventListingCreated, map[string]interface{}{"listing_no": listing.ListingNo}, &userID)
	return listing, nil
}

// GetUserListings returns all listings owned by userID, newest first.
func (s *Service) GetUserListings(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	if userID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetListingByID returns a single listing.
func (s *Service) GetListingByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	if listingID == uuid.Nil {
		return nil, errors.New("listing_id is required")
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Listing not found")
		}
		return nil, err
	}
	return &listing, nil
}

// RelatedSummary is the small projection of a referenced load listing shown
// on a shipment request.
type RelatedSummary struct {
	ListingID uuid.UUID `json:"listing_id"`
	ListingNo string    `json:"listing_no"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
}

// GetRelatedSummary resolves a shipment request's related load listing.
// A stale reference (target deleted) yields nil, nil: the enclosing view
// renders a fallback instead of failing.
func (s *Service) GetRelatedSummary(ctx context.Context, listing *domain.Listing) (*RelatedSummary, error) {
	if listing.RelatedLoadListingID == nil {
		return nil, nil
	}
	var target domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", *listing.RelatedLoadListingID).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &RelatedSummary{
		ListingID: target.ListingID,
		ListingNo: target.ListingNo,
		Title:     target.Title,
		Status:    target.Status,
	}, nil
}

// UpdateInput is a partial update; only non-nil fields change.
type UpdateInput struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Origin            *string    `json:"origin"`
	Destination       *string    `json:"destination"`
	LoadType          *string    `json:"load_type"`
	WeightValue       *float64   `json:"weight_value"`
	WeightUnit        *string    `json:"weight_unit"`
	VolumeValue       *float64   `json:"volume_value"`
	VolumeUnit        *string    `json:"volume_unit"`
	LoadingDate       *time.Time `json:"loading_date"`
	DeliveryDate      *time.Time `json:"delivery_date"`
	TransportMode     *string    `json:"transport_mode"`
	VehicleType       *string    `json:"vehicle_type"`
	OfferType         *string    `json:"offer_type"`
	PriceAmount       *float64   `json:"price_amount"`
	PriceCurrency     *string    `json:"price_currency"`
	RequiredDocuments []string   `json:"required_documents"`
	DocumentURLs      []string   `json:"document_urls"`
	ImageURLs         []string   `json:"image_urls"`
}

// EditListing applies a partial update. Owner-only. Changing the transport
// mode always resets vehicle type and selected documents first: a selection
// valid for the old mode must never survive the switch. New document and
// image URLs are unioned with the existing sets, never overwritten.
func (s *Service) EditListing(ctx context.Context, listingID, userID uuid.UUID, in UpdateInput) (*domain.Listing, error) {
	if listingID == uuid.Nil {
		return nil, errors.New("Missing listing_id")
	}
	listing, err := s.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(userID) {
		return nil, errors.New("Unauthorized listing edit")
	}
	if listing.Status == constants.StatusCancelled || listing.Status == constants.StatusCompleted {
		return nil, errors.New("Listing is not editable")
	}

	updates := map[string]interface{}{}

	mode := listing.TransportMode
	if in.TransportMode != nil && *in.TransportMode != listing.TransportMode {
		if !constants.IsValidTransportMode(*in.TransportMode) {
			return nil, errors.New("Unknown transport mode")
		}
		mode = *in.TransportMode
		updates["transport_mode"] = mode
		// Mode switch clears dependent selections.
		updates["vehicle_type"] = ""
		updates["required_documents"] = domain.StringList("")
	}

	if in.VehicleType != nil {
		if !catalog.IsValidVehicleType(mode, *in.VehicleType) {
			return nil, fmt.Errorf("Vehicle type %q is not valid for %s transport", *in.VehicleType, mode)
		}
		updates["vehicle_type"] = *in.VehicleType
	}
	if in.RequiredDocuments != nil {
		for _, doc := range in.RequiredDocuments {
			if !catalog.IsValidDocument(mode, doc) {
				return nil, fmt.Errorf("Document %q is not on the %s checklist", doc, mode)
			}
		}
		updates["required_documents"] = domain.NewStringList(in.RequiredDocuments)
	}

	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Origin != nil {
		updates["origin"] = *in.Origin
	}
	if in.Destination != nil {
		updates["destination"] = *in.Destination
	}
	if in.LoadType != nil {
		updates["load_type"] = *in.LoadType
	}
	if in.WeightValue != nil {
		if *in.WeightValue < 0 || *in.WeightValue > constants.MaxWeightValue {
			return nil, errors.New("Weight must be between 0 and 999999")
		}
		updates["weight_value"] = *in.WeightValue
	}
	if in.WeightUnit != nil {
		updates["weight_unit"] = *in.WeightUnit
	}
	if in.VolumeValue != nil {
		if *in.VolumeValue < 0 || *in.VolumeValue > constants.MaxVolumeValue {
			return nil, errors.New("Volume must be between 0 and 999999")
		}
		updates["volume_value"] = *in.VolumeValue
	}
	if in.VolumeUnit != nil {
		updates["volume_unit"] = *in.VolumeUnit
	}
	if in.LoadingDate != nil {
		updates["loading_date"] = *in.LoadingDate
	}
	if in.DeliveryDate != nil {
		updates["delivery_date"] = *in.DeliveryDate
	}
	if in.OfferType != nil {
		if !constants.IsValidOfferType(*in.OfferType) {
			return nil, errors.New("Unknown offer type")
		}
		updates["offer_type"] = *in.OfferType
	}
	if in.PriceAmount != nil {
		if *in.PriceAmount < 0 || *in.PriceAmount > constants.MaxPriceAmount {
			return nil, errors.New("Price must be between 0 and 999999999")
		}
		updates["price_amount"] = *in.PriceAmount
	}
	if in.PriceCurrency != nil {
		updates["price_currency"] = *in.PriceCurrency
	}
	if in.DocumentURLs != nil {
		updates["document_urls"] = listing.DocumentURLs.Union(in.DocumentURLs)
	}
	if in.ImageURLs != nil {
		updates["image_urls"] = listing.ImageURLs.Union(in.ImageURLs)
	}

	if len(updates) == 0 {
		return nil, errors.New("No valid changes provided")
	}

	if err := s.DB.WithContext(ctx).Model(listing).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.recordEvent(ctx, listingID, domain.EventListingUpdated, map[string]interface{}{"fields": len(updates)}, &userID)

	s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(listing)
	return listing, nil
}

// DeleteListing removes a listing. Idempotent from the caller's perspective:
// deleting a missing id succeeds.
func (s *Service) DeleteListing(ctx context.Context, listingID, userID uuid.UUID) error {
	if listingID == uuid.Nil {
		return errors.New("Missing listing_id")
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if !listing.IsOwnedBy(userID) {
		return errors.New("Unauthorized listing delete")
	}
	return s.DB.WithContext(ctx).Delete(&listing).Error
}

// statusTransitions defines the allowed moves between listing statuses.
var statusTransitions = map[string][]string{
	constants.StatusDraft:  {constants.StatusActive, constants.StatusCancelled},
	constants.StatusActive: {constants.StatusPaused, constants.StatusCompleted, constants.StatusCancelled, constants.StatusExpired},
	constants.StatusPaused: {constants.StatusActive, constants.StatusCancelled, constants.StatusExpired},
}

// UpdateStatus moves a listing through its lifecycle. Owner-only.
func (s *Service) UpdateStatus(ctx context.Context, listingID, userID uuid.UUID, newStatus string) (*domain.Listing, error) {
	if !constants.IsValidListingStatus(newStatus) {
		return nil, errors.New("Unknown status")
	}
	listing, err := s.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(userID) {
		return nil, errors.New("Unauthorized status change")
	}
	allowed := false
	for _, next := range statusTransitions[listing.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("Cannot change status from %s to %s", listing.Status, newStatus)
	}

	old := listing.Status
	listing.Status = newStatus
	if err := s.DB.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, err
	}
	s.recordEvent(ctx, listingID, domain.EventStatusChanged, map[string]interface{}{"from": old, "to": newStatus}, &userID)
	return listing, nil
}

// AttachDocuments uploads files one at a time (array order) and unions the
// resulting URLs into the listing. Failed files are skipped, not fatal.
func (s *Service) AttachDocuments(ctx context.Context, listingID, userID uuid.UUID, files []uploads.File) (*uploads.BatchResult, *domain.Listing, error) {
	if s.Uploads == nil {
		return nil, nil, errors.New("Uploads are not configured")
	}
	listing, err := s.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, nil, err
	}
	if !listing.IsOwnedBy(userID) {
		return nil, nil, errors.New("Unauthorized listing edit")
	}

	res := s.Uploads.UploadBatch(ctx, userID.String(), uploads.BucketDocuments, files)
	if urls := res.URLs(); len(urls) > 0 {
		merged := listing.DocumentURLs.Union(urls)
		if err := s.DB.WithContext(ctx).Model(listing).Update("document_urls", merged).Error; err != nil {
			return res, nil, err
		}
		listing.DocumentURLs = merged
		s.recordEvent(ctx, listingID, domain.EventDocumentAttached, map[string]interface{}{"count": len(urls)}, &userID)
	}
	return res, listing, nil
}

// recordEvent appends to the listing activity trail. Event write failures
// are swallowed: the primary operation already succeeded.
func (s *Service) recordEvent(ctx context.Context, listingID uuid.UUID, eventType string, data map[string]interface{}, actor *uuid.UUID) {
	ev := &domain.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		EventData: mustJSON(data),
		ActorID:   actor,
	}
	_ = s.DB.WithContext(ctx).Create(ev).Error
}

func mustJSON(data map[string]interface{}) datatypes.JSON {
	if data == nil {
		return datatypes.JSON([]byte("{}"))
	}
	b, err := json.Marshal(data)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
