package offers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateOfferInput is the offer submission body.
type CreateOfferInput struct {
	ListingID   uuid.UUID
	SenderID    uuid.UUID
	Price       float64
	Currency    string
	Description string
}

// CreateOffer submits a bid against a listing. The self-interaction guard
// rejects offers on the sender's own listing before any write.
func (s *Service) CreateOffer(ctx context.Context, in CreateOfferInput) (*domain.Offer, error) {
	if in.ListingID == uuid.Nil {
		return nil, errors.New("listing_id is required")
	}
	if in.SenderID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	if !validation.InRange(in.Price, 0, constants.MaxPriceAmount) {
		return nil, errors.New("Price must be between 0 and 999999999")
	}

	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Listing not found")
		}
		return nil, err
	}
	if listing.IsOwnedBy(in.SenderID) {
		return nil, errors.New("You cannot make an offer on your own listing")
	}
	if listing.Status != constants.StatusActive {
		return nil, errors.New("Listing is not open for offers")
	}

	currency := in.Currency
	if currency == "" {
		currency = "TRY"
	}
	offer := &domain.Offer{
		ListingID:   in.ListingID,
		SenderID:    in.SenderID,
		Price:       in.Price,
		Currency:    currency,
		Description: in.Description,
		Status:      constants.OfferPending,
	}
	if err := s.DB.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}

	eventData, _ := json.Marshal(map[string]interface{}{"offer_id": offer.OfferID, "price": in.Price})
	_ = s.DB.WithContext(ctx).Create(&domain.ListingEvent{
		ListingID: in.ListingID,
		EventType: domain.EventOfferReceived,
		EventData: datatypes.JSON(eventData),
		ActorID:   &in.SenderID,
	}).Error

	return offer, nil
}

// GetListingOffers returns offers on a listing. The owner sees every offer;
// anyone else sees only their own.
func (s *Service) GetListingOffers(ctx context.Context, listingID, viewerID uuid.UUID) ([]domain.Offer, error) {
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

	q := s.DB.WithContext(ctx).Where("listing_id = ?", listingID)
	if !listing.IsOwnedBy(viewerID) {
		q = q.Where("sender_id = ?", viewerID)
	}
	var offers []domain.Offer
	if err := q.Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// GetUserOffers returns all offers the user has sent, newest first.
func (s *Service) GetUserOffers(ctx context.Context, userID uuid.UUID) ([]domain.Offer, error) {
	if userID == uuid.Nil {
		return nil, errors.New("User not found in session")
	}
	var offers []domain.Offer
	if err := s.DB.WithContext(ctx).Where("sender_id = ?", userID).Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// resolve loads an offer with its listing for permission checks.
func (s *Service) resolve(ctx context.Context, offerID uuid.UUID) (*domain.Offer, *domain.Listing, error) {
	var offer domain.Offer
	if err := s.DB.WithContext(ctx).Where("offer_id = ?", offerID).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.New("Offer not found")
		}
		return nil, nil, err
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", offer.ListingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &offer, nil, errors.New("Listing not found")
		}
		return &offer, nil, err
	}
	return &offer, &listing, nil
}

// AcceptOffer accepts a pending offer. Listing owner only.
func (s *Service) AcceptOffer(ctx context.Context, offerID, userID uuid.UUID) (*domain.Offer, error) {
	return s.decide(ctx, offerID, userID, constants.OfferAccepted)
}

// RejectOffer rejects a pending offer. Listing owner only.
func (s *Service) RejectOffer(ctx context.Context, offerID, userID uuid.UUID) (*domain.Offer, error) {
	return s.decide(ctx, offerID, userID, constants.OfferRejected)
}

func (s *Service) decide(ctx context.Context, offerID, userID uuid.UUID, status string) (*domain.Offer, error) {
	offer, listing, err := s.resolve(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !listing.IsOwnedBy(userID) {
		return nil, errors.New("Unauthorized")
	}
	if offer.Status != constants.OfferPending {
		return nil, errors.New("Offer is not pending")
	}
	offer.Status = status
	if err := s.DB.WithContext(ctx).Save(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// WithdrawOffer withdraws a pending offer. Sender only.
func (s *Service) WithdrawOffer(ctx context.Context, offerID, userID uuid.UUID) (*domain.Offer, error) {
	var offer domain.Offer
	if err := s.DB.WithContext(ctx).Where("offer_id = ?", offerID).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Offer not found")
		}
		return nil, err
	}
	if offer.SenderID != userID {
		return nil, errors.New("Unauthorized")
	}
	if offer.Status != constants.OfferPending {
		return nil, errors.New("Offer is not pending")
	}
	offer.Status = constants.OfferWithdrawn
	if err := s.DB.WithContext(ctx).Save(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}
