package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/publishers"
	"github.com/Behyna/epay/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const periodLayout = "200601"

// BillingJob queues one charge per active subscription for the current period.
type BillingJob struct {
	subscriptions service.SubscriptionService
	publisher     publishers.ChargePublisher
	amount        int64
	currency      string
	now           func() time.Time
	logger        *zap.Logger
}

func NewBillingJob(subscriptions service.SubscriptionService, publisher publishers.ChargePublisher,
	cfg *config.Config, logger *zap.Logger,
) *BillingJob {
	currency := cfg.Billing.Currency
	if currency == "" {
		currency = cfg.Epay.DefaultCurrency
	}

	return &BillingJob{
		subscriptions: subscriptions,
		publisher:     publisher,
		amount:        cfg.Billing.Amount,
		currency:      currency,
		now:           time.Now,
		logger:        logger,
	}
}

func (j *BillingJob) WithClock(now func() time.Time) *BillingJob {
	j.now = now
	return j
}

// Run returns the number of charge commands published. A publish failure for
// one subscription does not stop the others.
func (j *BillingJob) Run(ctx context.Context) (int, error) {
	subs, err := j.subscriptions.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	period := j.now().UTC().Format(periodLayout)
	published := 0

	for _, sub := range subs {
		if !sub.Valid() || sub.ID() == 0 {
			j.logger.Debug("Skipping subscription", zap.Int64("subscriptionID", sub.ID()))
			continue
		}

		cmd := service.ChargeSubscriptionCommand{
			SubscriptionID: sub.ID(),
			Amount:         j.amount,
			Currency:       j.currency,
			OrderNo:        OrderNo(period, sub.ID()),
			CorrelationID:  uuid.NewString(),
		}

		if err := j.publisher.Publish(ctx, cmd); err != nil {
			continue
		}

		published++
	}

	j.logger.Info("Billing period queued",
		zap.String("period", period),
		zap.Int("published", published),
		zap.Int("total", len(subs)))

	return published, nil
}

// OrderNo is unique per subscription and period, so a redelivered charge
// command reuses the same gateway order number.
func OrderNo(period string, subscriptionID int64) string {
	return period + "-" + strconv.FormatInt(subscriptionID, 10)
}
