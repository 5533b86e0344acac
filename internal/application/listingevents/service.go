package listingevents

import (
	"context"
	"errors"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// GetListingEvents returns the activity trail for a listing, newest first.
// Owner only: the trail includes offer activity others should not see.
func (s *Service) GetListingEvents(ctx context.Context, listingID, userID uuid.UUID) ([]domain.ListingEvent, error) {
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
	if !listing.IsOwnedBy(userID) {
		return nil, errors.New("Unauthorized")
	}

	var events []domain.ListingEvent
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
