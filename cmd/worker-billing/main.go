package main

import (
	"context"

	"github.com/Behyna/epay/internal/api/middleware"
	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/consumers"
	"github.com/Behyna/epay/internal/metrics"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/httpclient"
	"github.com/Behyna/epay/pkg/mq"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,
			NewMQConnection,
			NewMQConsumer,

			NewGateway,
			NewChargeRecorder,
			service.NewBillingService,

			consumers.NewChargeConsumer,
		),
		fx.Invoke(runChargeConsumer),
	).Run()
}

func runChargeConsumer(cfg *config.Config, chargeConsumer consumers.ChargeConsumer, m *metrics.Metrics,
	logger *zap.Logger, rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())

	// The worker has no API of its own; it only serves health and metrics.
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.HealthCheckMiddleware(cfg.API.ServiceName + "-worker-billing"))
	app.Get("/metrics", m.Handler())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(cfg.Billing.Queue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			go func() {
				if err := chargeConsumer.Consume(appCtx); err != nil && appCtx.Err() == nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("metrics server exited", zap.Error(err))
				}
			}()

			logger.Info("billing consumer started", zap.String("queue", cfg.Billing.Queue))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping billing consumer")
			cancel()
			_ = app.ShutdownWithContext(ctx)
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return metrics.NewMetrics(reg)
}

func NewChargeRecorder(m *metrics.Metrics) service.ChargeRecorder {
	return m
}

func NewGateway(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (epay.Gateway, error) {
	client, err := epay.NewClient(cfg.Epay, httpclient.NewHTTPClient(cfg.Epay.Timeout), logger, epay.WithObserver(m))
	if err != nil {
		return nil, err
	}

	return client, nil
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
