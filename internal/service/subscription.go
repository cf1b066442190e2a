package service

import (
	"context"
	"errors"

	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/pkg/epay"
	"go.uber.org/zap"
)

type SubscriptionService interface {
	Create(ctx context.Context, cmd CreateSubscriptionCommand) (*epay.Subscription, error)
	Find(ctx context.Context, id int64) (*epay.Subscription, error)
	List(ctx context.Context) ([]*epay.Subscription, error)
	Authorize(ctx context.Context, cmd AuthorizeSubscriptionCommand) (*epay.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type Subscription struct {
	gateway epay.Gateway
	logger  *zap.Logger
}

func NewSubscriptionService(gateway epay.Gateway, logger *zap.Logger) SubscriptionService {
	return &Subscription{gateway: gateway, logger: logger}
}

func (s *Subscription) Create(ctx context.Context, cmd CreateSubscriptionCommand) (*epay.Subscription, error) {
	sub, err := s.gateway.CreateSubscription(ctx, epay.SubscriptionParams{
		CardNo:      cmd.CardNo,
		CVC:         cmd.CVC,
		ExpMonth:    cmd.ExpMonth,
		ExpYear:     cmd.ExpYear,
		Currency:    cmd.Currency,
		Description: cmd.Description,
	})
	if err != nil {
		s.logger.Error("Failed to create subscription", zap.Error(err))
		return nil, fromGateway(err)
	}

	if !sub.Valid() {
		s.logger.Warn("Card rejected when creating subscription",
			zap.String("errorCode", sub.ErrorCode()),
			zap.String("description", cmd.Description))
		return nil, NewServiceError(constants.ErrCodeCardDeclined,
			&epay.GatewayError{Action: "authorize", Code: sub.ErrorCode()})
	}

	s.logger.Info("Subscription created",
		zap.Int64("subscriptionID", sub.ID()),
		zap.String("card", sub.Card().LastDigits()))

	return sub, nil
}

func (s *Subscription) Find(ctx context.Context, id int64) (*epay.Subscription, error) {
	sub, err := s.gateway.FindSubscription(ctx, id)
	if err != nil {
		return nil, fromGateway(err)
	}

	return sub, nil
}

func (s *Subscription) List(ctx context.Context) ([]*epay.Subscription, error) {
	subs, err := s.gateway.AllSubscriptions(ctx)
	if err != nil {
		s.logger.Error("Failed to list subscriptions", zap.Error(err))
		return nil, fromGateway(err)
	}

	return subs, nil
}

func (s *Subscription) Authorize(ctx context.Context, cmd AuthorizeSubscriptionCommand) (*epay.Transaction, error) {
	tx, err := s.gateway.AuthorizeSubscription(ctx, cmd.SubscriptionID, epay.PaymentParams{
		Amount:         cmd.Amount,
		Currency:       cmd.Currency,
		OrderNo:        cmd.OrderNo,
		Description:    cmd.Description,
		InstantCapture: cmd.InstantCapture,
	})
	if err != nil {
		s.logger.Error("Failed to authorize subscription",
			zap.Error(err),
			zap.Int64("subscriptionID", cmd.SubscriptionID))
		return nil, fromGateway(err)
	}

	if !tx.Valid() {
		s.logger.Warn("Subscription charge declined",
			zap.Int64("subscriptionID", cmd.SubscriptionID),
			zap.String("errorCode", tx.ErrorCode()),
			zap.Bool("temporary", tx.TemporaryError()))
		return nil, declined("authorize", tx)
	}

	s.logger.Info("Subscription authorized",
		zap.Int64("subscriptionID", cmd.SubscriptionID),
		zap.Int64("transactionID", tx.ID()),
		zap.Int64("amount", cmd.Amount))

	return tx, nil
}

func (s *Subscription) Delete(ctx context.Context, id int64) error {
	ok, err := s.gateway.DeleteSubscription(ctx, id)
	if err != nil {
		return fromGateway(err)
	}

	if !ok {
		return NewServiceError(constants.ErrCodeOperationFailed, errors.New("subscription was not deleted"))
	}

	s.logger.Info("Subscription deleted", zap.Int64("subscriptionID", id))

	return nil
}
