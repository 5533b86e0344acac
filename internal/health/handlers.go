package health

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb        *redis.Client
	DB         DBPinger
	StorageURL string
}

// JSON returns health data: service status, runtime info, and dependency pings.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx := context.Background()
	result := CollectHealth(ctx, h.Rdb, h.DB, h.StorageURL)
	out := map[string]interface{}{
		"service":      "kargo-market-api",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"dependencies": result.Dependencies,
	}
	return c.JSON(out)
}
