package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch     *amqp.Channel
	logger *zap.Logger
}

func NewRabbitConsumer(ch *amqp.Channel, logger *zap.Logger) *RabbitConsumer {
	return &RabbitConsumer{ch: ch, logger: logger}
}

// Consume blocks until ctx is done or the delivery channel closes. Handler
// errors that report Temporary() are requeued; anything else is dead-lettered.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel("", false)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			c.deliver(WithCorrelationID(ctx, d.CorrelationId), d, handler)
		}
	}
}

func (c *RabbitConsumer) deliver(ctx context.Context, d amqp.Delivery, handler Handle) {
	err := handler(ctx, d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	requeue := shouldRequeue(err)
	c.logger.Warn("message rejected",
		zap.String("queue", d.RoutingKey),
		zap.String("correlation_id", d.CorrelationId),
		zap.Bool("requeue", requeue),
		zap.Error(err))

	_ = d.Nack(false, requeue)
}

type correlationKey struct{}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
