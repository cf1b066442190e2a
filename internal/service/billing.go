package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/pkg/epay"
	"go.uber.org/zap"
)

const (
	ChargeOutcomeSuccess     = "success"
	ChargeOutcomeUnconfirmed = "accepted_unconfirmed"
	ChargeOutcomeDeclined    = "declined"
	ChargeOutcomeRetryFailed = "retries_exhausted"
	ChargeOutcomeInterrupted = "interrupted"
	ChargeOutcomeError       = "error"
)

type ChargeRecorder interface {
	RecordCharge(outcome string, attempts int)
}

type BillingService interface {
	Charge(ctx context.Context, cmd ChargeSubscriptionCommand) error
}

type Billing struct {
	gateway  epay.Gateway
	recorder ChargeRecorder
	maxRetry int
	backoff  time.Duration
	logger   *zap.Logger
}

func NewBillingService(gateway epay.Gateway, recorder ChargeRecorder, cfg *config.Config, logger *zap.Logger) BillingService {
	maxRetry := cfg.Billing.MaxRetries
	if maxRetry < 1 {
		maxRetry = 1
	}

	return &Billing{
		gateway:  gateway,
		recorder: recorder,
		maxRetry: maxRetry,
		backoff:  cfg.Billing.RetryBackoff,
		logger:   logger,
	}
}

// Charge authorizes and captures one billing period for a subscription.
// Transport failures and transient gateway codes are retried with a linear
// backoff; a permanent decline returns immediately. Once the gateway has
// accepted the charge it is never repeated, even if the new transaction
// cannot be loaded.
func (b *Billing) Charge(ctx context.Context, cmd ChargeSubscriptionCommand) error {
	params := epay.PaymentParams{
		Amount:         cmd.Amount,
		Currency:       cmd.Currency,
		OrderNo:        cmd.OrderNo,
		InstantCapture: true,
	}

	var lastErr error
	for attempt := 1; attempt <= b.maxRetry; attempt++ {
		if attempt > 1 {
			if err := b.wait(ctx, attempt); err != nil {
				b.logger.Warn("Charge interrupted before retry",
					zap.Error(err),
					zap.NamedError("lastError", lastErr),
					zap.Int("attempt", attempt-1),
					zap.Int64("subscriptionID", cmd.SubscriptionID))
				b.record(ChargeOutcomeInterrupted, attempt-1)

				// lastErr keeps the result temporary so the command is redelivered.
				return fromGateway(errors.Join(lastErr, err))
			}
		}

		tx, err := b.gateway.AuthorizeSubscription(ctx, cmd.SubscriptionID, params)
		if err == nil && tx.Valid() {
			b.logger.Info("Subscription charged successfully",
				zap.Int64("subscriptionID", cmd.SubscriptionID),
				zap.Int("attempt", attempt),
				zap.String("orderNo", cmd.OrderNo),
				zap.String("correlationID", cmd.CorrelationID),
				zap.Int64("transactionID", tx.ID()))
			b.record(ChargeOutcomeSuccess, attempt)

			return nil
		}

		if accepted(err) {
			b.logger.Error("Charge accepted but transaction not confirmed, reconcile manually",
				zap.Error(err),
				zap.Int64("subscriptionID", cmd.SubscriptionID),
				zap.Int("attempt", attempt),
				zap.String("orderNo", cmd.OrderNo),
				zap.String("correlationID", cmd.CorrelationID))
			b.record(ChargeOutcomeUnconfirmed, attempt)

			return nil
		}

		if err == nil {
			if !tx.TemporaryError() {
				b.logger.Warn("Non-retryable decline encountered",
					zap.String("errorCode", tx.ErrorCode()),
					zap.Int("attempt", attempt),
					zap.Int64("subscriptionID", cmd.SubscriptionID))
				b.record(ChargeOutcomeDeclined, attempt)

				return declined("authorize", tx)
			}

			err = &epay.GatewayError{Action: "authorize", Code: tx.ErrorCode(), Message: tx.ErrorMessage(), Err: epay.ErrTemporary}
		}

		if !epay.IsTemporary(err) {
			b.logger.Warn("Non-retryable error encountered",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.Int64("subscriptionID", cmd.SubscriptionID))
			b.record(ChargeOutcomeError, attempt)

			return fromGateway(err)
		}

		b.logger.Warn("Charge attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int64("subscriptionID", cmd.SubscriptionID))

		lastErr = err
	}

	b.record(ChargeOutcomeRetryFailed, b.maxRetry)

	if errors.Is(lastErr, epay.ErrTimeout) {
		b.logger.Error("Charge attempts timed out",
			zap.Error(lastErr),
			zap.Int("maxRetries", b.maxRetry),
			zap.Int64("subscriptionID", cmd.SubscriptionID))
		return NewServiceError(constants.ErrCodeGatewayTimeout, lastErr)
	}

	b.logger.Error("Gateway unavailable after all retries",
		zap.Error(lastErr),
		zap.Int("maxRetries", b.maxRetry),
		zap.Int64("subscriptionID", cmd.SubscriptionID))

	return NewServiceError(constants.ErrCodeGatewayUnavailable, lastErr)
}

// accepted reports whether err was raised after the gateway accepted the charge.
func accepted(err error) bool {
	var acceptedErr *epay.AcceptedError
	return errors.As(err, &acceptedErr) || errors.Is(err, epay.ErrMissingTransactionID)
}

func (b *Billing) wait(ctx context.Context, attempt int) error {
	if err := ctx.Err(); err != nil || b.backoff <= 0 {
		return err
	}

	timer := time.NewTimer(time.Duration(attempt-1) * b.backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *Billing) record(outcome string, attempts int) {
	if b.recorder != nil {
		b.recorder.RecordCharge(outcome, attempts)
	}
}
