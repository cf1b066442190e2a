package service

import (
	"context"

	"github.com/Behyna/epay/pkg/epay"
	"go.uber.org/zap"
)

type TransactionService interface {
	Create(ctx context.Context, cmd CreatePaymentCommand) (*epay.Transaction, error)
	Find(ctx context.Context, id int64) (*epay.Transaction, error)
	Capture(ctx context.Context, cmd CaptureCommand) (*epay.Transaction, error)
	Credit(ctx context.Context, cmd CreditCommand) (*epay.Transaction, error)
	Delete(ctx context.Context, id int64) (*epay.Transaction, error)
}

type Transaction struct {
	gateway epay.Gateway
	logger  *zap.Logger
}

func NewTransactionService(gateway epay.Gateway, logger *zap.Logger) TransactionService {
	return &Transaction{gateway: gateway, logger: logger}
}

func (t *Transaction) Create(ctx context.Context, cmd CreatePaymentCommand) (*epay.Transaction, error) {
	tx, err := t.gateway.CreateTransaction(ctx, epay.PaymentParams{
		CardNo:         cmd.CardNo,
		CVC:            cmd.CVC,
		ExpMonth:       cmd.ExpMonth,
		ExpYear:        cmd.ExpYear,
		Amount:         cmd.Amount,
		Currency:       cmd.Currency,
		OrderNo:        cmd.OrderNo,
		Description:    cmd.Description,
		InstantCapture: cmd.InstantCapture,
	})
	if err != nil {
		t.logger.Error("Failed to create payment", zap.Error(err), zap.String("orderNo", cmd.OrderNo))
		return nil, fromGateway(err)
	}

	if !tx.Valid() {
		t.logger.Warn("Payment declined",
			zap.String("orderNo", cmd.OrderNo),
			zap.String("errorCode", tx.ErrorCode()))
		return nil, declined("authorize", tx)
	}

	t.logger.Info("Payment authorized",
		zap.Int64("transactionID", tx.ID()),
		zap.String("orderNo", tx.OrderNo()),
		zap.Int64("amount", tx.Amount()))

	return tx, nil
}

func (t *Transaction) Find(ctx context.Context, id int64) (*epay.Transaction, error) {
	tx, err := t.gateway.FindTransaction(ctx, id)
	if err != nil {
		return nil, fromGateway(err)
	}

	return tx, nil
}

func (t *Transaction) Capture(ctx context.Context, cmd CaptureCommand) (*epay.Transaction, error) {
	tx, err := t.gateway.CaptureTransaction(ctx, cmd.TransactionID, cmd.Amount)
	if err != nil {
		t.logger.Warn("Capture failed",
			zap.Error(err),
			zap.Int64("transactionID", cmd.TransactionID),
			zap.Int64("amount", cmd.Amount))
		return nil, fromGateway(err)
	}

	t.logger.Info("Transaction captured",
		zap.Int64("transactionID", tx.ID()),
		zap.Int64("capturedAmount", tx.CapturedAmount()))

	return tx, nil
}

func (t *Transaction) Credit(ctx context.Context, cmd CreditCommand) (*epay.Transaction, error) {
	tx, err := t.gateway.CreditTransaction(ctx, cmd.TransactionID, cmd.Amount)
	if err != nil {
		t.logger.Warn("Credit failed",
			zap.Error(err),
			zap.Int64("transactionID", cmd.TransactionID),
			zap.Int64("amount", cmd.Amount))
		return nil, fromGateway(err)
	}

	t.logger.Info("Transaction credited",
		zap.Int64("transactionID", tx.ID()),
		zap.Int64("creditedAmount", tx.CreditedAmount()))

	return tx, nil
}

func (t *Transaction) Delete(ctx context.Context, id int64) (*epay.Transaction, error) {
	tx, err := t.gateway.DeleteTransaction(ctx, id)
	if err != nil {
		t.logger.Warn("Delete failed", zap.Error(err), zap.Int64("transactionID", id))
		return nil, fromGateway(err)
	}

	t.logger.Info("Transaction deleted", zap.Int64("transactionID", id))

	return tx, nil
}
