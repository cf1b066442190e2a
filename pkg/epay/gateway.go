package epay

import "context"

var _ Gateway = (*Client)(nil)

type Gateway interface {
	FindSubscription(ctx context.Context, id int64) (*Subscription, error)
	CreateSubscription(ctx context.Context, params SubscriptionParams) (*Subscription, error)
	AllSubscriptions(ctx context.Context) ([]*Subscription, error)
	AuthorizeSubscription(ctx context.Context, id int64, params PaymentParams) (*Transaction, error)
	DeleteSubscription(ctx context.Context, id int64) (bool, error)

	FindTransaction(ctx context.Context, id int64) (*Transaction, error)
	CreateTransaction(ctx context.Context, params PaymentParams) (*Transaction, error)
	CaptureTransaction(ctx context.Context, id, amount int64) (*Transaction, error)
	CreditTransaction(ctx context.Context, id, amount int64) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) (*Transaction, error)
}
