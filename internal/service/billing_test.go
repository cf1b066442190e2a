package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/epay/internal/config"
	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/internal/mocks"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/soap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func approvedTransaction(id string) *epay.Transaction {
	return epay.NewTransactionFromData(nil, soap.Map{"transactionid": id, "authamount": "9900", "status": epay.StatusCaptured})
}

func declinedTransaction(code string) *epay.Transaction {
	return epay.NewTransactionFromData(nil, soap.Map{"error": code, "failed": "true"})
}

func TestBilling_Charge(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.ChargeSubscriptionCommand{
		SubscriptionID: 7,
		Amount:         9900,
		Currency:       "DKK",
		OrderNo:        "202410-7",
		CorrelationID:  "c0ffee",
	}

	expectedParams := epay.PaymentParams{
		Amount:         9900,
		Currency:       "DKK",
		OrderNo:        "202410-7",
		InstantCapture: true,
	}

	cfg := &config.Config{Billing: config.Billing{MaxRetries: 3}}

	setup := func() (*mocks.Gateway, *mocks.ChargeRecorder, service.BillingService) {
		gateway := &mocks.Gateway{}
		recorder := &mocks.ChargeRecorder{}
		recorder.On("RecordCharge", mock.Anything, mock.Anything).Return()
		return gateway, recorder, service.NewBillingService(gateway, recorder, cfg, logger)
	}

	t.Run("Successful charge on first attempt", func(t *testing.T) {
		gateway, recorder, svc := setup()
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(approvedTransaction("42"), nil).Once()

		err := svc.Charge(context.Background(), cmd)

		assert.NoError(t, err)
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
		recorder.AssertCalled(t, "RecordCharge", service.ChargeOutcomeSuccess, 1)
	})

	t.Run("Permanent decline is not retried", func(t *testing.T) {
		gateway, recorder, svc := setup()
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(declinedTransaction("51"), nil).Once()

		err := svc.Charge(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeCardDeclined, serviceErr.Code)
		assert.False(t, epay.IsTemporary(err))

		var gatewayErr *epay.GatewayError
		require.ErrorAs(t, err, &gatewayErr)
		assert.Equal(t, "51", gatewayErr.Code)

		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
		recorder.AssertCalled(t, "RecordCharge", service.ChargeOutcomeDeclined, 1)
	})

	t.Run("Transient decline retried until success", func(t *testing.T) {
		gateway, _, svc := setup()
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(declinedTransaction("-23"), nil).Once()
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(approvedTransaction("42"), nil).Once()

		err := svc.Charge(context.Background(), cmd)

		assert.NoError(t, err)
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 2)
	})

	t.Run("Transport errors retry until max attempts", func(t *testing.T) {
		gateway, recorder, svc := setup()
		transportErr := &epay.TransportError{Action: "authorize", Err: errors.New("connection reset")}
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(nil, transportErr)

		err := svc.Charge(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeGatewayUnavailable, serviceErr.Code)
		assert.True(t, epay.IsTemporary(err))
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 3)
		recorder.AssertCalled(t, "RecordCharge", service.ChargeOutcomeRetryFailed, 3)
	})

	t.Run("Timeouts retry until max attempts", func(t *testing.T) {
		gateway, _, svc := setup()
		timeoutErr := &epay.TransportError{Action: "authorize", Err: context.DeadlineExceeded}
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(nil, timeoutErr)

		err := svc.Charge(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeGatewayTimeout, serviceErr.Code)
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 3)
	})

	t.Run("Subscription not found is not retried", func(t *testing.T) {
		gateway, _, svc := setup()
		notFound := &epay.GatewayError{Action: "getsubscriptions", Code: "-1009", Err: epay.ErrSubscriptionNotFound}
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
			Return(nil, notFound).Once()

		err := svc.Charge(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeSubscriptionNotFound, serviceErr.Code)
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
	})

	t.Run("Cancelled context stops retrying", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewBillingService(gateway, nil, &config.Config{Billing: config.Billing{MaxRetries: 3, RetryBackoff: 1}}, logger)

		ctx, cancel := context.WithCancel(context.Background())
		gateway.On("AuthorizeSubscription", ctx, int64(7), expectedParams).
			Run(func(mock.Arguments) { cancel() }).
			Return(nil, &epay.TransportError{Err: errors.New("reset")}).Once()

		err := svc.Charge(ctx, cmd)

		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, epay.IsTemporary(err))
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
	})

	t.Run("Charges after gateway acceptance are never repeated", func(t *testing.T) {
		lookupFailed := &epay.AcceptedError{
			Action:        "authorize",
			TransactionID: 42,
			Err:           &epay.TransportError{Action: "gettransaction", Err: errors.New("connection reset")},
		}
		missingID := &epay.GatewayError{Action: "authorize", Err: epay.ErrMissingTransactionID}

		tests := []struct {
			name string
			err  error
		}{
			{"lookup failed", lookupFailed},
			{"timed out lookup", &epay.AcceptedError{Action: "authorize", TransactionID: 42, Err: &epay.TransportError{Err: context.DeadlineExceeded}}},
			{"missing transaction id", missingID},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				gateway, recorder, svc := setup()
				gateway.On("AuthorizeSubscription", context.Background(), int64(7), expectedParams).
					Return(nil, tt.err).Once()

				err := svc.Charge(context.Background(), cmd)

				assert.NoError(t, err)
				assert.False(t, epay.IsTemporary(tt.err))
				gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
				recorder.AssertCalled(t, "RecordCharge", service.ChargeOutcomeUnconfirmed, 1)
				recorder.AssertNotCalled(t, "RecordCharge", service.ChargeOutcomeError, mock.Anything)
			})
		}
	})

	t.Run("Cancellation during backoff keeps the charge retryable", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		recorder := &mocks.ChargeRecorder{}
		recorder.On("RecordCharge", mock.Anything, mock.Anything).Return()
		svc := service.NewBillingService(gateway, recorder, &config.Config{Billing: config.Billing{MaxRetries: 3, RetryBackoff: 1}}, logger)

		ctx, cancel := context.WithCancel(context.Background())
		gateway.On("AuthorizeSubscription", ctx, int64(7), expectedParams).
			Run(func(mock.Arguments) { cancel() }).
			Return(declinedTransaction("-23"), nil).Once()

		err := svc.Charge(ctx, cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeGatewayTemporary, serviceErr.Code)
		assert.True(t, epay.IsTemporary(err))
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, epay.ErrTemporary)
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
		recorder.AssertCalled(t, "RecordCharge", service.ChargeOutcomeInterrupted, 1)
	})
}
