package main

import (
	"context"

	"github.com/Behyna/epay/internal/api/middleware"
	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/metrics"
	"github.com/Behyna/epay/internal/publishers"
	"github.com/Behyna/epay/internal/scheduler"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/httpclient"
	"github.com/Behyna/epay/pkg/mq"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
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
			NewMQPublisher,
			NewQueueRecorder,

			NewGateway,
			service.NewSubscriptionService,

			publishers.NewChargePublisher,
			scheduler.NewBillingJob,
			scheduler.NewScheduler,
		),
		fx.Invoke(runScheduler),
	).Run()
}

func runScheduler(cfg *config.Config, s *scheduler.Scheduler, m *metrics.Metrics, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.HealthCheckMiddleware(cfg.API.ServiceName + "-scheduler-billing"))
	app.Get("/metrics", m.Handler())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(cfg.Billing.Queue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			if err := s.Start(); err != nil {
				return err
			}

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("metrics server exited", zap.Error(err))
				}
			}()

			logger.Info("billing scheduler started", zap.String("schedule", cfg.Billing.Schedule))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping billing scheduler")
			select {
			case <-s.Stop().Done():
			case <-ctx.Done():
			}
			_ = app.ShutdownWithContext(ctx)
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func NewQueueRecorder(m *metrics.Metrics) publishers.QueueRecorder {
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

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
