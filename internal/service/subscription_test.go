package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/internal/mocks"
	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/soap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSubscription_Create(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.CreateSubscriptionCommand{
		CardNo:      "4444444444444444",
		CVC:         "123",
		ExpMonth:    12,
		ExpYear:     25,
		Description: "Monthly plan",
	}

	params := epay.SubscriptionParams{
		CardNo:      "4444444444444444",
		CVC:         "123",
		ExpMonth:    12,
		ExpYear:     25,
		Description: "Monthly plan",
	}

	t.Run("created", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewSubscriptionService(gateway, logger)

		sub := epay.NewSubscriptionFromData(nil, soap.Map{"subscriptionid": "77"})
		gateway.On("CreateSubscription", context.Background(), params).Return(sub, nil).Once()

		got, err := svc.Create(context.Background(), cmd)

		require.NoError(t, err)
		assert.Same(t, sub, got)
		gateway.AssertExpectations(t)
	})

	t.Run("card rejected", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewSubscriptionService(gateway, logger)

		rejected := epay.NewSubscriptionFromData(nil, soap.Map{"error": "102"})
		gateway.On("CreateSubscription", context.Background(), params).Return(rejected, nil).Once()

		_, err := svc.Create(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeCardDeclined, serviceErr.Code)
		assert.Contains(t, err.Error(), "102")
	})

	t.Run("unknown currency", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewSubscriptionService(gateway, logger)

		withCurrency := params
		withCurrency.Currency = "XXX"
		gateway.On("CreateSubscription", context.Background(), withCurrency).Return(nil, epay.ErrUnknownCurrency).Once()

		cmd := cmd
		cmd.Currency = "XXX"
		_, err := svc.Create(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeUnknownCurrency, serviceErr.Code)
	})
}

func TestSubscription_Find(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code string
	}{
		{"not found", &epay.GatewayError{Code: "-1009", Err: epay.ErrSubscriptionNotFound}, constants.ErrCodeSubscriptionNotFound},
		{"invalid merchant", &epay.GatewayError{Code: "-1002", Err: epay.ErrInvalidMerchantNumber}, constants.ErrCodeInvalidMerchant},
		{"temporary", &epay.GatewayError{Code: "-1000", Err: epay.ErrTemporary}, constants.ErrCodeGatewayTemporary},
		{"unknown gateway code", &epay.GatewayError{Code: "-9999"}, constants.ErrCodeGatewayError},
		{"timeout", &epay.TransportError{Err: context.DeadlineExceeded}, constants.ErrCodeGatewayTimeout},
		{"transport", &epay.TransportError{Err: errors.New("reset")}, constants.ErrCodeGatewayUnavailable},
		{"unexpected", errors.New("boom"), constants.ErrCodeInternalError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &mocks.Gateway{}
			svc := service.NewSubscriptionService(gateway, zap.NewNop())
			gateway.On("FindSubscription", context.Background(), int64(999)).Return(nil, tc.err).Once()

			_, err := svc.Find(context.Background(), 999)

			var serviceErr service.Error
			require.True(t, errors.As(err, &serviceErr))
			assert.Equal(t, tc.code, serviceErr.Code)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestSubscription_Authorize(t *testing.T) {
	cmd := service.AuthorizeSubscriptionCommand{SubscriptionID: 7, Amount: 500, Currency: "EUR", OrderNo: "A-1"}
	params := epay.PaymentParams{Amount: 500, Currency: "EUR", OrderNo: "A-1"}

	t.Run("approved", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewSubscriptionService(gateway, zap.NewNop())
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), params).Return(approvedTransaction("42"), nil).Once()

		tx, err := svc.Authorize(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(42), tx.ID())
	})

	t.Run("declined", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewSubscriptionService(gateway, zap.NewNop())
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), params).Return(declinedTransaction("51"), nil).Once()

		_, err := svc.Authorize(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeCardDeclined, serviceErr.Code)
	})

	t.Run("accepted but not loaded", func(t *testing.T) {
		gateway := &mocks.Gateway{}
		svc := service.NewSubscriptionService(gateway, zap.NewNop())
		acceptedErr := &epay.AcceptedError{
			Action:        "authorize",
			TransactionID: 42,
			Err:           &epay.TransportError{Err: context.DeadlineExceeded},
		}
		gateway.On("AuthorizeSubscription", context.Background(), int64(7), params).Return(nil, acceptedErr).Once()

		_, err := svc.Authorize(context.Background(), cmd)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeChargeUnconfirmed, serviceErr.Code)
		assert.Equal(t, http.StatusAccepted, constants.GetHTTPStatus(serviceErr.Code))
		assert.False(t, epay.IsTemporary(err))
		gateway.AssertNumberOfCalls(t, "AuthorizeSubscription", 1)
	})
}

func TestSubscription_Delete(t *testing.T) {
	gateway := &mocks.Gateway{}
	svc := service.NewSubscriptionService(gateway, zap.NewNop())

	gateway.On("DeleteSubscription", context.Background(), int64(7)).Return(true, nil).Once()
	assert.NoError(t, svc.Delete(context.Background(), 7))

	gateway.On("DeleteSubscription", context.Background(), int64(8)).Return(false, nil).Once()
	err := svc.Delete(context.Background(), 8)

	var serviceErr service.Error
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, constants.ErrCodeOperationFailed, serviceErr.Code)
}

func TestSubscription_List(t *testing.T) {
	gateway := &mocks.Gateway{}
	svc := service.NewSubscriptionService(gateway, zap.NewNop())

	subs := []*epay.Subscription{
		epay.NewSubscriptionFromData(nil, soap.Map{"subscriptionid": "1"}),
		epay.NewSubscriptionFromData(nil, soap.Map{"subscriptionid": "2"}),
	}
	gateway.On("AllSubscriptions", context.Background()).Return(subs, nil).Once()

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
