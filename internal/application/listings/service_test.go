package listings

import (
	"context"
	"testing"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.ListingEvent{}))
	return &Service{DB: db}, db
}

func createTestListing(t *testing.T, s *Service, userID uuid.UUID) *domain.Listing {
	listing, err := s.CreateListing(context.Background(), userID, validDraft())
	require.NoError(t, err)
	return listing
}

func TestCreateListing_PersistsAndNumbersListing(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()

	listing := createTestListing(t, s, userID)
	assert.NotEqual(t, uuid.Nil, listing.ListingID)
	assert.Contains(t, listing.ListingNo, "LL-")
	assert.Equal(t, "active", listing.Status)
	assert.Equal(t, userID, listing.UserID)
}

func TestCreateListing_InvalidDraftWritesNothing(t *testing.T) {
	s, db := setupService(t)

	_, err := s.CreateListing(context.Background(), uuid.New(), Draft{ListingType: "load_listing"})
	require.Error(t, err)

	var count int64
	db.Model(&domain.Listing{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateListing_ShipmentRequestNumbering(t *testing.T) {
	s, _ := setupService(t)
	d := validDraft()
	d.ListingType = "shipment_request"
	listing, err := s.CreateListing(context.Background(), uuid.New(), d)
	require.NoError(t, err)
	assert.Contains(t, listing.ListingNo, "SR-")
}

func TestEditListing_ModeSwitchClearsSelections(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	listing := createTestListing(t, s, userID)
	require.Equal(t, "truck_12_open", listing.VehicleType)

	mode := "sea"
	updated, err := s.EditListing(context.Background(), listing.ListingID, userID, UpdateInput{TransportMode: &mode})
	require.NoError(t, err)
	assert.Equal(t, "sea", updated.TransportMode)
	assert.Equal(t, "", updated.VehicleType)
	assert.Empty(t, updated.RequiredDocuments.Items())
}

func TestEditListing_ModeSwitchWithNewSelections(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	listing := createTestListing(t, s, userID)

	mode := "sea"
	vehicle := "vessel_general_cargo"
	updated, err := s.EditListing(context.Background(), listing.ListingID, userID, UpdateInput{
		TransportMode:     &mode,
		VehicleType:       &vehicle,
		RequiredDocuments: []string{"Bill of Lading"},
	})
	require.NoError(t, err)
	assert.Equal(t, "vessel_general_cargo", updated.VehicleType)
	assert.Equal(t, []string{"Bill of Lading"}, updated.RequiredDocuments.Items())
}

func TestEditListing_RejectsVehicleFromOtherMode(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	listing := createTestListing(t, s, userID)

	vehicle := "vessel_product_tanker"
	_, err := s.EditListing(context.Background(), listing.ListingID, userID, UpdateInput{VehicleType: &vehicle})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not valid for road transport")
}

func TestEditListing_OwnerOnly(t *testing.T) {
	s, _ := setupService(t)
	listing := createTestListing(t, s, uuid.New())

	title := "hijack"
	_, err := s.EditListing(context.Background(), listing.ListingID, uuid.New(), UpdateInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, "Unauthorized listing edit", err.Error())
}

func TestEditListing_DocumentURLsUnion(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	listing := createTestListing(t, s, userID)

	first, err := s.EditListing(context.Background(), listing.ListingID, userID, UpdateInput{
		DocumentURLs: []string{"https://cdn.example.com/a.pdf"},
	})
	require.NoError(t, err)

	second, err := s.EditListing(context.Background(), first.ListingID, userID, UpdateInput{
		DocumentURLs: []string{"https://cdn.example.com/a.pdf", "https://cdn.example.com/b.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/a.pdf", "https://cdn.example.com/b.pdf"}, second.DocumentURLs.Items())
}

func TestUpdateStatus_Transitions(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	listing := createTestListing(t, s, userID)

	paused, err := s.UpdateStatus(context.Background(), listing.ListingID, userID, "paused")
	require.NoError(t, err)
	assert.Equal(t, "paused", paused.Status)

	active, err := s.UpdateStatus(context.Background(), listing.ListingID, userID, "active")
	require.NoError(t, err)
	assert.Equal(t, "active", active.Status)

	_, err = s.UpdateStatus(context.Background(), listing.ListingID, userID, "completed")
	require.NoError(t, err)

	// Completed is terminal
	_, err = s.UpdateStatus(context.Background(), listing.ListingID, userID, "active")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot change status")
}

func TestDeleteListing_Idempotent(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	listing := createTestListing(t, s, userID)

	require.NoError(t, s.DeleteListing(context.Background(), listing.ListingID, userID))
	// Second delete of a gone listing still succeeds
	require.NoError(t, s.DeleteListing(context.Background(), listing.ListingID, userID))
}

func TestRelatedSummary_StaleReferenceYieldsNil(t *testing.T) {
	s, _ := setupService(t)
	userID := uuid.New()
	load := createTestListing(t, s, userID)

	d := validDraft()
	d.ListingType = "shipment_request"
	d.RelatedLoadListingID = load.ListingID.String()
	request, err := s.CreateListing(context.Background(), userID, d)
	require.NoError(t, err)

	summary, err := s.GetRelatedSummary(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, load.ListingNo, summary.ListingNo)

	// Delete the target; the reference goes stale and resolves to nil
	require.NoError(t, s.DeleteListing(context.Background(), load.ListingID, userID))
	summary, err = s.GetRelatedSummary(context.Background(), request)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestCreateListing_RecordsEvent(t *testing.T) {
	s, db := setupService(t)
	listing := createTestListing(t, s, uuid.New())

	var events []domain.ListingEvent
	require.NoError(t, db.Where("listing_id = ?", listing.ListingID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventListingCreated, events[0].EventType)
}
