package listings

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	listsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/listings"
	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupListingsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.ListingEvent{}))
	svc := &listsvc.Service{DB: db}
	return &Handlers{Service: svc}, db
}

func testApp(h *Handlers, userID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  userID.String(),
			"fullname": "Test User",
			"email":    "test@example.com",
			"role":     "trader",
		})
		return c.Next()
	})
	app.Post("/create-listing", h.CreateListing)
	app.Get("/get-my-listings", h.GetMyListings)
	app.Get("/get-listing/:listing_id", h.GetListingByID)
	app.Put("/edit-listing", h.EditListing)
	app.Delete("/delete-listing/:listing_id", h.DeleteListing)
	app.Post("/update-status", h.UpdateStatus)
	return app
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"listing_type":   "load_listing",
		"title":          "Steel coils Istanbul to Hamburg",
		"description":    "20 tons of steel coils",
		"origin":         "Istanbul",
		"destination":    "Hamburg",
		"transport_mode": "road",
		"vehicle_type":   "truck_12_open",
		"offer_type":     "negotiable",
	}
}

func TestCreateListing_Success(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := testApp(h, uuid.New())

	body, _ := json.Marshal(validBody())
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	assert.Contains(t, data["listing_no"], "LL-")
	assert.Equal(t, "active", data["status"])
}

func TestCreateListing_ValidationDetails(t *testing.T) {
	h, db := setupListingsTest(t)
	app := testApp(h, uuid.New())

	body, _ := json.Marshal(map[string]interface{}{"listing_type": "load_listing", "offer_type": "negotiable"})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "error", out["status"])
	errObj, _ := out["error"].(map[string]interface{})
	require.NotNil(t, errObj)
	assert.Equal(t, "Validation failed", errObj["message"])
	details, _ := errObj["details"].([]interface{})
	assert.GreaterOrEqual(t, len(details), 4, "every missing field should be reported")

	var count int64
	db.Model(&domain.Listing{}).Count(&count)
	assert.Equal(t, int64(0), count, "no write on validation failure")
}

func TestCreateListing_Unauthenticated(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(validBody())
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetListingByID_InvalidUUID(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := testApp(h, uuid.New())

	req := httptest.NewRequest("GET", "/get-listing/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetListingByID_NotFound(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := testApp(h, uuid.New())

	req := httptest.NewRequest("GET", "/get-listing/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEditListing_MissingID(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := testApp(h, uuid.New())

	body, _ := json.Marshal(map[string]interface{}{"title": "new title"})
	req := httptest.NewRequest("PUT", "/edit-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEditListing_ForeignListingForbidden(t *testing.T) {
	h, db := setupListingsTest(t)
	ownerID := uuid.New()

	ownerApp := testApp(h, ownerID)
	body, _ := json.Marshal(validBody())
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ownerApp.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var listing domain.Listing
	require.NoError(t, db.First(&listing).Error)

	otherApp := testApp(h, uuid.New())
	editBody, _ := json.Marshal(map[string]interface{}{
		"listing_id": listing.ListingID.String(),
		"title":      "hijack",
	})
	req = httptest.NewRequest("PUT", "/edit-listing", bytes.NewReader(editBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = otherApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateStatus_BadTransition(t *testing.T) {
	h, db := setupListingsTest(t)
	userID := uuid.New()
	app := testApp(h, userID)

	body, _ := json.Marshal(validBody())
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var listing domain.Listing
	require.NoError(t, db.First(&listing).Error)

	// active -> draft is not a legal move
	statusBody, _ := json.Marshal(map[string]string{
		"listing_id": listing.ListingID.String(),
		"status":     "draft",
	})
	req = httptest.NewRequest("POST", "/update-status", bytes.NewReader(statusBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteListing_Success(t *testing.T) {
	h, db := setupListingsTest(t)
	userID := uuid.New()
	app := testApp(h, userID)

	body, _ := json.Marshal(validBody())
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var listing domain.Listing
	require.NoError(t, db.First(&listing).Error)

	req = httptest.NewRequest("DELETE", "/delete-listing/"+listing.ListingID.String(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
