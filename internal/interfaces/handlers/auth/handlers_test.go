package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	usersvc "github.com/badaskaptan/kargomarket-sub002/internal/application/user"
	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthHandlers(t *testing.T) (*Handlers, *gorm.DB, *redis.Client) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{
		DB:    db,
		Users: &usersvc.Service{DB: db, Rdb: rdb},
		Rdb:   rdb,
		Config: middleware.SessionConfig{
			AllowCrossSiteDev: false,
			IsProduction:      false,
		},
	}
	return h, db, rdb
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	require.NoError(t, err)
	u := &domain.User{
		Fullname:     "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "trader",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// testPassword must satisfy the password policy or the register requests
// below come back 400 instead of exercising the session flow.
const testPassword = "Password123!"

func TestPasswordFixtureMeetsPolicy(t *testing.T) {
	require.True(t, validation.IsValidPassword(testPassword))
}

func TestRegister_Success(t *testing.T) {
	h, _, rdb := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/register", h.Register)

	body, _ := json.Marshal(map[string]string{
		"fullname": "New Trader",
		"email":    "new@example.com",
		"password": testPassword,
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], "kargo.sid=")

	keys, err := rdb.Keys(context.Background(), "user_sessions:*").Result()
	require.NoError(t, err)
	assert.NotEmpty(t, keys)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	seedUser(t, db, "taken@example.com", testPassword)
	app := fiber.New()
	app.Post("/register", h.Register)

	body, _ := json.Marshal(map[string]string{
		"fullname": "Second User",
		"email":    "taken@example.com",
		"password": testPassword,
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogin_Success(t *testing.T) {
	h, db, rdb := setupAuthHandlers(t)
	seedUser(t, db, "test@example.com", testPassword)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "test@example.com", "password": testPassword})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Login successful", out["message"])
	data, _ := out["data"].(map[string]interface{})
	require.NotNil(t, data)
	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "test@example.com", user["email"])

	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], "kargo.sid=")

	keys, err := rdb.Keys(context.Background(), "user_sessions:*").Result()
	require.NoError(t, err)
	assert.NotEmpty(t, keys)
}

func TestLogin_IncorrectPassword(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	seedUser(t, db, "test@example.com", testPassword)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "test@example.com", "password": "wrong"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com", "password": "any"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_MissingCredentials(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMe_NoSession(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Get("/me", h.Me)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_WithSessionUserInLocals(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Get("/me", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  "550e8400-e29b-41d4-a716-446655440000",
			"fullname": "Test",
			"email":    "test@example.com",
			"role":     "trader",
		})
		return h.Me(c)
	})

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "Authenticated", out["message"])
}

func TestLogout_NoSession(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Delete("/logout", h.Logout)

	req := httptest.NewRequest("DELETE", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Values("Set-Cookie"))
}
