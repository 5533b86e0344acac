package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

func TestCollectHealth_NoDependencies(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil, "")
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", result.Dependencies["redis"].Status)
	assert.NotEmpty(t, result.Runtime.GoVersion)
}

func TestCollectHealth_AllConnected(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	result := CollectHealth(context.Background(), rdb, okPinger{}, "")
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
}

func TestJSONHandler(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	h := &Handlers{Rdb: rdb, DB: okPinger{}}
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	req := httptest.NewRequest("GET", "/health/json", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "kargo-market-api", out["service"])
	assert.Equal(t, "ok", out["status"])
}
