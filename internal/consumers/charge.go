package consumers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/mq"
	"go.uber.org/zap"
)

type ChargeConsumer interface {
	Consume(ctx context.Context) error
}

type chargeConsumer struct {
	service  service.BillingService
	consumer mq.Consumer
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewChargeConsumer(service service.BillingService, consumer mq.Consumer, cfg *config.Config, logger *zap.Logger) ChargeConsumer {
	return &chargeConsumer{
		service:  service,
		consumer: consumer,
		queue:    cfg.Billing.Queue,
		prefetch: cfg.RabbitMQ.Prefetch,
		logger:   logger,
	}
}

func (c *chargeConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.prefetch, c.queue, c.handleMessage)
}

func (c *chargeConsumer) handleMessage(ctx context.Context, body []byte) error {
	var cmd service.ChargeSubscriptionCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("invalid charge command", zap.Error(err), zap.ByteString("body", body))
		return fmt.Errorf("invalid charge command: %w", err)
	}

	if cmd.CorrelationID == "" {
		cmd.CorrelationID = mq.CorrelationID(ctx)
	}

	c.logger.Info("received charge command",
		zap.Int64("subscriptionID", cmd.SubscriptionID),
		zap.String("orderNo", cmd.OrderNo),
		zap.String("correlationID", cmd.CorrelationID))

	err := c.service.Charge(ctx, cmd)
	if err != nil && epay.IsTemporary(err) {
		return mq.Temporary(err)
	}

	return err
}
