package mocks

import (
	"context"

	"github.com/Behyna/epay/internal/service"
	"github.com/Behyna/epay/pkg/epay"
	"github.com/stretchr/testify/mock"
)

type SubscriptionService struct {
	mock.Mock
}

func (_m *SubscriptionService) Create(ctx context.Context, cmd service.CreateSubscriptionCommand) (*epay.Subscription, error) {
	ret := _m.Called(ctx, cmd)
	return subscription(ret.Get(0)), ret.Error(1)
}

func (_m *SubscriptionService) Find(ctx context.Context, id int64) (*epay.Subscription, error) {
	ret := _m.Called(ctx, id)
	return subscription(ret.Get(0)), ret.Error(1)
}

func (_m *SubscriptionService) List(ctx context.Context) ([]*epay.Subscription, error) {
	ret := _m.Called(ctx)

	var subs []*epay.Subscription
	if v := ret.Get(0); v != nil {
		subs = v.([]*epay.Subscription)
	}

	return subs, ret.Error(1)
}

func (_m *SubscriptionService) Authorize(ctx context.Context, cmd service.AuthorizeSubscriptionCommand) (*epay.Transaction, error) {
	ret := _m.Called(ctx, cmd)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *SubscriptionService) Delete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

type TransactionService struct {
	mock.Mock
}

func (_m *TransactionService) Create(ctx context.Context, cmd service.CreatePaymentCommand) (*epay.Transaction, error) {
	ret := _m.Called(ctx, cmd)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *TransactionService) Find(ctx context.Context, id int64) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *TransactionService) Capture(ctx context.Context, cmd service.CaptureCommand) (*epay.Transaction, error) {
	ret := _m.Called(ctx, cmd)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *TransactionService) Credit(ctx context.Context, cmd service.CreditCommand) (*epay.Transaction, error) {
	ret := _m.Called(ctx, cmd)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *TransactionService) Delete(ctx context.Context, id int64) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id)
	return transaction(ret.Get(0)), ret.Error(1)
}

type BillingService struct {
	mock.Mock
}

func (_m *BillingService) Charge(ctx context.Context, cmd service.ChargeSubscriptionCommand) error {
	ret := _m.Called(ctx, cmd)
	return ret.Error(0)
}

type ChargeRecorder struct {
	mock.Mock
}

func (_m *ChargeRecorder) RecordCharge(outcome string, attempts int) {
	_m.Called(outcome, attempts)
}

type ChargePublisher struct {
	mock.Mock
}

func (_m *ChargePublisher) Publish(ctx context.Context, cmd service.ChargeSubscriptionCommand) error {
	ret := _m.Called(ctx, cmd)
	return ret.Error(0)
}
