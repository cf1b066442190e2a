package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const TrackIDHeader = "X-Track-Id"

func HealthCheckMiddleware(serviceName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"status":    "healthy",
				"timestamp": time.Now().Unix(),
				"service":   serviceName,
			})
		}
		return c.Next()
	}
}

// TrackIDMiddleware reuses an incoming X-Track-Id or generates one.
func TrackIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     TrackIDHeader,
		Generator:  uuid.NewString,
		ContextKey: "track_id",
	})
}

func TrackID(c *fiber.Ctx) string {
	id, _ := c.Locals("track_id").(string)
	return id
}
