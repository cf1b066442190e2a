package publishers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/mq"
	"go.uber.org/zap"
)

type ChargePublisher interface {
	Publish(ctx context.Context, cmd service.ChargeSubscriptionCommand) error
}

type QueueRecorder interface {
	RecordChargeQueued()
}

type chargePublisher struct {
	publisher mq.Publisher
	recorder  QueueRecorder
	queue     string
	logger    *zap.Logger
}

func NewChargePublisher(publisher mq.Publisher, recorder QueueRecorder, cfg *config.Config, logger *zap.Logger) ChargePublisher {
	return &chargePublisher{
		publisher: publisher,
		recorder:  recorder,
		queue:     cfg.Billing.Queue,
		logger:    logger,
	}
}

// Publish sends cmd to the billing queue through the default exchange.
func (p *chargePublisher) Publish(ctx context.Context, cmd service.ChargeSubscriptionCommand) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to encode charge command: %w", err)
	}

	msg := mq.Message{Body: body, CorrelationID: cmd.CorrelationID}
	if err := p.publisher.Publish(ctx, "", p.queue, msg); err != nil {
		p.logger.Error("Failed to publish charge command",
			zap.Error(err),
			zap.Int64("subscriptionID", cmd.SubscriptionID),
			zap.String("correlationID", cmd.CorrelationID))
		return fmt.Errorf("failed to publish charge command: %w", err)
	}

	if p.recorder != nil {
		p.recorder.RecordChargeQueued()
	}

	p.logger.Debug("Charge command published",
		zap.Int64("subscriptionID", cmd.SubscriptionID),
		zap.String("orderNo", cmd.OrderNo),
		zap.String("queue", p.queue))

	return nil
}
