package mocks

import (
	"context"

	"github.com/Behyna/epay/pkg/epay"
	"github.com/stretchr/testify/mock"
)

type Gateway struct {
	mock.Mock
}

func (_m *Gateway) FindSubscription(ctx context.Context, id int64) (*epay.Subscription, error) {
	ret := _m.Called(ctx, id)
	return subscription(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) CreateSubscription(ctx context.Context, params epay.SubscriptionParams) (*epay.Subscription, error) {
	ret := _m.Called(ctx, params)
	return subscription(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) AllSubscriptions(ctx context.Context) ([]*epay.Subscription, error) {
	ret := _m.Called(ctx)

	var subs []*epay.Subscription
	if v := ret.Get(0); v != nil {
		subs = v.([]*epay.Subscription)
	}

	return subs, ret.Error(1)
}

func (_m *Gateway) AuthorizeSubscription(ctx context.Context, id int64, params epay.PaymentParams) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id, params)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) DeleteSubscription(ctx context.Context, id int64) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (_m *Gateway) FindTransaction(ctx context.Context, id int64) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) CreateTransaction(ctx context.Context, params epay.PaymentParams) (*epay.Transaction, error) {
	ret := _m.Called(ctx, params)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) CaptureTransaction(ctx context.Context, id, amount int64) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id, amount)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) CreditTransaction(ctx context.Context, id, amount int64) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id, amount)
	return transaction(ret.Get(0)), ret.Error(1)
}

func (_m *Gateway) DeleteTransaction(ctx context.Context, id int64) (*epay.Transaction, error) {
	ret := _m.Called(ctx, id)
	return transaction(ret.Get(0)), ret.Error(1)
}

func subscription(v any) *epay.Subscription {
	if v == nil {
		return nil
	}
	return v.(*epay.Subscription)
}

func transaction(v any) *epay.Transaction {
	if v == nil {
		return nil
	}
	return v.(*epay.Transaction)
}
