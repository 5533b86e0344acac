package marketplace

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

func sample(no, title, origin, dest, listingType, mode, loadType string) domain.Listing {
	return domain.Listing{
		ListingNo:     no,
		Title:         title,
		Origin:        origin,
		Destination:   dest,
		ListingType:   listingType,
		TransportMode: mode,
		LoadType:      loadType,
	}
}

func sampleSet() []domain.Listing {
	return []domain.Listing{
		sample("LL-1", "Steel coils to Hamburg", "Istanbul", "Hamburg", "load_listing", "road", "general_cargo"),
		sample("LL-2", "Grain shipment", "Odessa", "Rotterdam", "load_listing", "sea", "bulk"),
		sample("SR-1", "Need reefer truck", "Izmir", "Munich", "shipment_request", "road", "refrigerated"),
		sample("LL-3", "Hamburg bound electronics", "Ankara", "Hamburg", "load_listing", "air", "general_cargo"),
	}
}

func TestFilterListings_PreservesOrder(t *testing.T) {
	items := sampleSet()
	out := FilterListings(items, "hamburg", "", "")
	require.Len(t, out, 2)
	// Input order survives filtering
	assert.Equal(t, "LL-1", out[0].ListingNo)
	assert.Equal(t, "LL-3", out[1].ListingNo)
}

func TestFilterListings_CaseInsensitiveQuery(t *testing.T) {
	items := sampleSet()
	assert.Len(t, FilterListings(items, "GRAIN", "", ""), 1)
	assert.Len(t, FilterListings(items, "grain", "", ""), 1)
}

func TestFilterListings_QueryMatchesRouteAndLoadType(t *testing.T) {
	items := sampleSet()
	// Origin match
	assert.Len(t, FilterListings(items, "odessa", "", ""), 1)
	// Load type match
	assert.Len(t, FilterListings(items, "refrigerated", "", ""), 1)
}

func TestFilterListings_TypeAndModeExact(t *testing.T) {
	items := sampleSet()
	assert.Len(t, FilterListings(items, "", "load_listing", ""), 3)
	assert.Len(t, FilterListings(items, "", "shipment_request", ""), 1)
	assert.Len(t, FilterListings(items, "", "", "road"), 2)
	assert.Len(t, FilterListings(items, "", "load_listing", "road"), 1)
}

func TestFilterListings_AllMeansEverything(t *testing.T) {
	items := sampleSet()
	assert.Len(t, FilterListings(items, "", "all", "all"), 4)
	assert.Len(t, FilterListings(items, "", "", ""), 4)
}

func TestFilterListings_EmptyResult(t *testing.T) {
	out := FilterListings(sampleSet(), "nonexistent cargo", "", "")
	assert.Len(t, out, 0)
}

func TestSearchListings_OnlyActive(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.ListingEvent{}))

	ls := &listsvc.Service{DB: db}
	userID := uuid.New()

	weight := 100.0
	d := listsvc.Draft{
		ListingType:   "load_listing",
		Title:         "Visible listing",
		Description:   "desc",
		Origin:        "A",
		Destination:   "B",
		WeightValue:   &weight,
		TransportMode: "multimodal",
		OfferType:     "negotiable",
	}
	active, err := ls.CreateListing(context.Background(), userID, d)
	require.NoError(t, err)

	d.Title = "Paused listing"
	paused, err := ls.CreateListing(context.Background(), userID, d)
	require.NoError(t, err)
	_, err = ls.UpdateStatus(context.Background(), paused.ListingID, userID, "paused")
	require.NoError(t, err)

	s := &Service{DB: db}
	out, err := s.SearchListings(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, active.ListingID, out[0].ListingID)
}
