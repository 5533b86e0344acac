package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RouteLogger logs one line per request with method, path, status, duration
// and trace ID. The session user, when present, is included so marketplace
// actions can be tied to an account.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		start := time.Now()
		err := c.Next()
		ms := time.Since(start).Milliseconds()

		ev := log.Info().
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("ms", ms)
		if uid := ActorUserID(c); uid != uuid.Nil {
			ev = ev.Str("user_id", uid.String())
		}
		ev.Msg("Request completed")
		return err
	}
}
