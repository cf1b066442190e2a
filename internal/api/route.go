package api

import (
	"github.com/Behyna/epay/internal/api/middleware"
	v1 "github.com/Behyna/epay/internal/api/v1"
	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const prefixV1 = "/api/v1"

func NewApp(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(logger),
		DisableStartupMessage: true,
	})
}

func SetupRoutes(app *fiber.App, handler *v1.Handler, m *metrics.Metrics, cfg *config.Config, logger *zap.Logger) {
	app.Use(middleware.TrackIDMiddleware())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	app.Use(middleware.HealthCheckMiddleware(cfg.API.ServiceName))

	app.Get("/ping", handler.Pong)
	app.Get("/metrics", m.Handler())

	api := app.Group(prefixV1)

	subscriptions := api.Group("/subscriptions")
	subscriptions.Post("", handler.CreateSubscription)
	subscriptions.Get("", handler.ListSubscriptions)
	subscriptions.Get("/:id", handler.GetSubscription)
	subscriptions.Delete("/:id", handler.DeleteSubscription)
	subscriptions.Post("/:id/authorize", handler.AuthorizeSubscription)

	transactions := api.Group("/transactions")
	transactions.Post("", handler.CreateTransaction)
	transactions.Get("/:id", handler.GetTransaction)
	transactions.Post("/:id/capture", handler.CaptureTransaction)
	transactions.Post("/:id/credit", handler.CreditTransaction)
	transactions.Delete("/:id", handler.DeleteTransaction)
}
