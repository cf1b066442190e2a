package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/internal/mocks"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTransaction_Create(t *testing.T) {
	cmd := service.CreatePaymentCommand{CardNo: "4444444444444444", ExpMonth: 6, ExpYear: 27, Amount: 10000, Currency: "DKK"}
	params := epay.PaymentParams{CardNo: "4444444444444444", ExpMonth: 6, ExpYear: 27, Amount: 10000, Currency: "DKK"}

	t.Run("authorized", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewTransactionService(gateway, zap.NewNop())
		gateway.On("CreateTransaction", context.Background(), params).Return(approvedTransaction("42"), nil).Once()

		tx, err := svc.Create(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(42), tx.ID())
	})

	t.Run("declined", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewTransactionService(gateway, zap.NewNop())
		gateway.On("CreateTransaction", context.Background(), params).Return(declinedTransaction("51"), nil).Once()

		_, err := svc.Create(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeCardDeclined, serviceErr.Code)
	})
}

func TestTransaction_Capture(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code string
	}{
		{"already captured", &epay.GatewayError{Code: "-1010", Err: epay.ErrTransactionAlreadyCaptured}, constants.ErrCodeTransactionAlreadyCaptured},
		{"grace period", &epay.GatewayError{Code: "-1023", Err: epay.ErrTransactionInGracePeriod}, constants.ErrCodeTransactionInGracePeriod},
		{"authorization not found", &epay.GatewayError{Code: "-1021", Err: epay.ErrAuthorizationNotFound}, constants.ErrCodeAuthorizationNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &mocks.Gateway{}
			svc := service.NewTransactionService(gateway, zap.NewNop())
			gateway.On("CaptureTransaction", context.Background(), int64(42), int64(0)).Return(nil, tc.err).Once()

			_, err := svc.Capture(context.Background(), service.CaptureCommand{TransactionID: 42})

			var serviceErr service.Error
			require.True(t, errors.As(err, &serviceErr))
			assert.Equal(t, tc.code, serviceErr.Code)
		})
	}

	t.Run("captured", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewTransactionService(gateway, zap.NewNop())
		gateway.On("CaptureTransaction", context.Background(), int64(42), int64(500)).Return(approvedTransaction("42"), nil).Once()

		tx, err := svc.Capture(context.Background(), service.CaptureCommand{TransactionID: 42, Amount: 500})

		require.NoError(t, err)
		assert.True(t, tx.Captured())
	})
}

func TestTransaction_CreditAndDelete(t *testing.T) {
	gateway := &mocks.Gateway{}
	svc := service.NewTransactionService(gateway, zap.NewNop())

	gateway.On("CreditTransaction", context.Background(), int64(42), int64(100)).Return(approvedTransaction("42"), nil).Once()
	gateway.On("DeleteTransaction", context.Background(), int64(43)).
		Return(nil, &epay.GatewayError{Code: "-1008", Err: epay.ErrTransactionNotFound}).Once()

	_, err := svc.Credit(context.Background(), service.CreditCommand{TransactionID: 42, Amount: 100})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), 43)

	var serviceErr service.Error
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, constants.ErrCodeTransactionNotFound, serviceErr.Code)
	gateway.AssertExpectations(t)
}
