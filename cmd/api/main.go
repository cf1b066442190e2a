package main

import (
	"context"
	"time"

	"github.com/Behyna/epay/internal/api"
	v1 "github.com/Behyna/epay/internal/api/v1"
	"github.com/Behyna/epay/internal/api/validator"
	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/metrics"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/httpclient"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,
			metrics.NewSystemCollector,
			NewGateway,
			NewXValidator,

			service.NewSubscriptionService,
			service.NewTransactionService,

			v1.NewHandler,
			api.NewApp,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, m *metrics.Metrics, collector *metrics.SystemCollector,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle,
) {
	api.SetupRoutes(app, handler, m, cfg, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(cfg.API.ServiceName, version, 15*time.Second)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("http server exited", zap.Error(err))
				}
			}()

			logger.Info("api started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return metrics.NewMetrics(reg)
}

func NewGateway(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (epay.Gateway, error) {
	client, err := epay.NewClient(cfg.Epay, httpclient.NewHTTPClient(cfg.Epay.Timeout), logger, epay.WithObserver(m))
	if err != nil {
		return nil, err
	}

	return client, nil
}

func NewXValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(govalidator.New(), m)
}
