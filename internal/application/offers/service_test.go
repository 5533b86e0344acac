package offers

import (
	"context"
	"testing"

	listsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	"github.com/badaskaptan/kargomarket-sub002/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOffersTest(t *testing.T) (*Service, *listsvc.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.Offer{}, &domain.ListingEvent{}))
	return &Service{DB: db}, &listsvc.Service{DB: db}
}

func newActiveListing(t *testing.T, ls *listsvc.Service, ownerID uuid.UUID) *domain.Listing {
	listing, err := ls.CreateListing(context.Background(), ownerID, listsvc.Draft{
		ListingType:   "load_listing",
		Title:         "Cargo to move",
		Description:   "desc",
		Origin:        "A",
		Destination:   "B",
		TransportMode: "multimodal",
		OfferType:     "negotiable",
	})
	require.NoError(t, err)
	return listing
}

func TestCreateOffer_OwnListingRejected(t *testing.T) {
	s, ls := setupOffersTest(t)
	ownerID := uuid.New()
	listing := newActiveListing(t, ls, ownerID)

	_, err := s.CreateOffer(context.Background(), CreateOfferInput{
		ListingID: listing.ListingID,
		SenderID:  ownerID,
		Price:     1000,
	})
	require.Error(t, err)
	assert.Equal(t, "You cannot make an offer on your own listing", err.Error())
}

func TestCreateOffer_OtherUserSucceeds(t *testing.T) {
	s, ls := setupOffersTest(t)
	listing := newActiveListing(t, ls, uuid.New())
	senderID := uuid.New()

	offer, err := s.CreateOffer(context.Background(), CreateOfferInput{
		ListingID: listing.ListingID,
		SenderID:  senderID,
		Price:     1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", offer.Status)
	assert.Equal(t, "TRY", offer.Currency)
}

func TestCreateOffer_PriceBounds(t *testing.T) {
	s, ls := setupOffersTest(t)
	listing := newActiveListing(t, ls, uuid.New())

	_, err := s.CreateOffer(context.Background(), CreateOfferInput{
		ListingID: listing.ListingID,
		SenderID:  uuid.New(),
		Price:     1000000000,
	})
	require.Error(t, err)
	assert.Equal(t, "Price must be between 0 and 999999999", err.Error())
}

func TestCreateOffer_InactiveListingRejected(t *testing.T) {
	s, ls := setupOffersTest(t)
	ownerID := uuid.New()
	listing := newActiveListing(t, ls, ownerID)
	_, err := ls.UpdateStatus(context.Background(), listing.ListingID, ownerID, "paused")
	require.NoError(t, err)

	_, err = s.CreateOffer(context.Background(), CreateOfferInput{
		ListingID: listing.ListingID,
		SenderID:  uuid.New(),
		Price:     500,
	})
	require.Error(t, err)
	assert.Equal(t, "Listing is not open for offers", err.Error())
}

func TestGetListingOffers_Visibility(t *testing.T) {
	s, ls := setupOffersTest(t)
	ownerID := uuid.New()
	listing := newActiveListing(t, ls, ownerID)

	senderA := uuid.New()
	senderB := uuid.New()
	for _, sender := range []uuid.UUID{senderA, senderB} {
		_, err := s.CreateOffer(context.Background(), CreateOfferInput{
			ListingID: listing.ListingID,
			SenderID:  sender,
			Price:     100,
		})
		require.NoError(t, err)
	}

	ownerView, err := s.GetListingOffers(context.Background(), listing.ListingID, ownerID)
	require.NoError(t, err)
	assert.Len(t, ownerView, 2)

	senderView, err := s.GetListingOffers(context.Background(), listing.ListingID, senderA)
	require.NoError(t, err)
	require.Len(t, senderView, 1)
	assert.Equal(t, senderA, senderView[0].SenderID)
}

func TestAcceptOffer_OwnerOnlyAndPendingOnly(t *testing.T) {
	s, ls := setupOffersTest(t)
	ownerID := uuid.New()
	listing := newActiveListing(t, ls, ownerID)
	senderID := uuid.New()

	offer, err := s.CreateOffer(context.Background(), CreateOfferInput{
		ListingID: listing.ListingID,
		SenderID:  senderID,
		Price:     700,
	})
	require.NoError(t, err)

	_, err = s.AcceptOffer(context.Background(), offer.OfferID, senderID)
	require.Error(t, err)
	assert.Equal(t, "Unauthorized", err.Error())

	accepted, err := s.AcceptOffer(context.Background(), offer.OfferID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.Status)

	_, err = s.RejectOffer(context.Background(), offer.OfferID, ownerID)
	require.Error(t, err)
	assert.Equal(t, "Offer is not pending", err.Error())
}

func TestWithdrawOffer_SenderOnly(t *testing.T) {
	s, ls := setupOffersTest(t)
	ownerID := uuid.New()
	listing := newActiveListing(t, ls, ownerID)
	senderID := uuid.New()

	offer, err := s.CreateOffer(context.Background(), CreateOfferInput{
		ListingID: listing.ListingID,
		SenderID:  senderID,
		Price:     700,
	})
	require.NoError(t, err)

	_, err = s.WithdrawOffer(context.Background(), offer.OfferID, ownerID)
	require.Error(t, err)

	withdrawn, err := s.WithdrawOffer(context.Background(), offer.OfferID, senderID)
	require.NoError(t, err)
	assert.Equal(t, "withdrawn", withdrawn.Status)
}
