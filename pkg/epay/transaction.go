package epay

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/Behyna/epay/pkg/soap"
	"go.uber.org/zap"
)

const (
	StatusNew      = "PAYMENT_NEW"
	StatusCaptured = "PAYMENT_CAPTURED"
	StatusDeleted  = "PAYMENT_DELETED"
)

type Transaction struct {
	client *Client
	id     int64
	data   soap.Map
}

func NewTransactionFromData(c *Client, data soap.Map) *Transaction {
	return &Transaction{client: c, id: data.Int64("transactionid"), data: data}
}

func newFailedTransaction(c *Client, code, message string) *Transaction {
	data := soap.Map{"error": code, "failed": "true"}
	if message != "" {
		data["errortext"] = message
	}

	return &Transaction{client: c, data: data}
}

func (t *Transaction) ID() int64 {
	return t.id
}

// Data returns a shallow copy of the record. Nested maps are shared and must
// not be modified.
func (t *Transaction) Data() soap.Map {
	return maps.Clone(t.data)
}

func (t *Transaction) OrderNo() string {
	return t.data.String("orderid")
}

func (t *Transaction) Description() string {
	return t.data.String("description")
}

func (t *Transaction) Cardholder() string {
	return t.data.String("cardholder")
}

func (t *Transaction) Acquirer() string {
	return t.data.String("acquirer")
}

// Currency returns the alphabetic code, or the raw numeric code when it is not in the table.
func (t *Transaction) Currency() string {
	numeric := t.data.String("currency")
	if alpha, ok := CurrencyFromCode(numeric); ok {
		return alpha
	}

	return numeric
}

func (t *Transaction) Amount() int64 {
	return t.data.Int64("authamount")
}

func (t *Transaction) CapturedAmount() int64 {
	return t.data.Int64("capturedamount")
}

func (t *Transaction) CreditedAmount() int64 {
	return t.data.Int64("creditedamount")
}

func (t *Transaction) Status() string {
	return t.data.String("status")
}

func (t *Transaction) CreatedAt() time.Time {
	return parseTime(t.data.String("authdate"))
}

func (t *Transaction) Captured() bool {
	return t.Status() == StatusCaptured || t.CapturedAmount() > 0
}

func (t *Transaction) Credited() bool {
	return t.CreditedAmount() > 0
}

func (t *Transaction) Deleted() bool {
	return t.Status() == StatusDeleted
}

func (t *Transaction) Valid() bool {
	return !t.data.Has("error")
}

func (t *Transaction) Failed() bool {
	return t.data.Bool("failed")
}

func (t *Transaction) ErrorCode() string {
	return t.data.String("error")
}

func (t *Transaction) ErrorMessage() string {
	return t.data.String("errortext")
}

func (t *Transaction) TemporaryError() bool {
	return !t.Valid() && IsTemporaryErrorCode(t.ErrorCode())
}

func (t *Transaction) PermanentError() bool {
	return !t.Valid() && !IsTemporaryErrorCode(t.ErrorCode())
}

func (t *Transaction) Card() Card {
	return Card{
		Number:   t.data.String("tcardno"),
		ExpYear:  t.data.Int("expyear"),
		ExpMonth: t.data.Int("expmonth"),
		Kind:     cardKindFrom(t.data.String("cardtypeid")),
	}
}

func (t *Transaction) Reload(ctx context.Context) (*Transaction, error) {
	const action = "gettransaction"

	call := Call{
		Endpoint: t.client.cfg.PaymentURL(),
		Action:   action,
		Params:   NewParams("transactionid", strconv.FormatInt(t.id, 10)),
		Success:  ResultFlag(action),
	}

	return Dispatch(ctx, t.client, call, func(resp Response) (*Transaction, error) {
		if !resp.Success() {
			gerr := mapFailure(action, resp, ErrInvalidMerchantNumber, ErrTransactionNotFound)
			if gerr.Err == nil {
				gerr.Err = ErrTransactionNotFound
			}
			return nil, gerr
		}

		record := resp.Data().Map("transactionInformation")
		if record == nil {
			return nil, fmt.Errorf("%w: id %d", ErrTransactionNotFound, t.id)
		}

		t.data = record
		return t, nil
	})
}

// Capture settles amount of the authorization; zero captures the full authorized amount.
func (t *Transaction) Capture(ctx context.Context, amount int64) (*Transaction, error) {
	if amount == 0 {
		if t.data == nil {
			if _, err := t.Reload(ctx); err != nil {
				return nil, err
			}
		}
		amount = t.Amount()
	}

	return t.mutate(ctx, "capture", amount,
		ErrTransactionAlreadyCaptured, ErrAuthorizationNotFound, ErrTransactionInGracePeriod,
		ErrInvalidMerchantNumber, ErrTransactionNotFound)
}

func (t *Transaction) Credit(ctx context.Context, amount int64) (*Transaction, error) {
	return t.mutate(ctx, "credit", amount,
		ErrTransactionNotFound, ErrInvalidMerchantNumber, ErrTransactionInGracePeriod)
}

// Delete voids an authorization that has not been captured.
func (t *Transaction) Delete(ctx context.Context) (*Transaction, error) {
	return t.mutate(ctx, "delete", -1,
		ErrTransactionInGracePeriod, ErrTransactionAlreadyCaptured,
		ErrTransactionNotFound, ErrInvalidMerchantNumber)
}

// mutate runs a payment action and reloads the transaction on success.
// A negative amount leaves the amount field out.
func (t *Transaction) mutate(ctx context.Context, action string, amount int64, allowed ...error) (*Transaction, error) {
	params := NewParams("transactionid", strconv.FormatInt(t.id, 10))
	if amount >= 0 {
		params.Set("amount", strconv.FormatInt(amount, 10))
	}

	call := Call{
		Endpoint: t.client.cfg.PaymentURL(),
		Action:   action,
		Params:   params,
		Success:  ResultFlag(action),
	}

	return Dispatch(ctx, t.client, call, func(resp Response) (*Transaction, error) {
		if !resp.Success() {
			return nil, mapFailure(action, resp, allowed...)
		}

		return t.Reload(ctx)
	})
}

func (c *Client) FindTransaction(ctx context.Context, id int64) (*Transaction, error) {
	return (&Transaction{client: c, id: id}).Reload(ctx)
}

// CreateTransaction authorizes a card payment through the authorization
// endpoint. A declined card yields a failed Transaction, not an error.
func (c *Client) CreateTransaction(ctx context.Context, params PaymentParams) (*Transaction, error) {
	if params.OrderNo == "" {
		params.OrderNo = c.nextOrderNo()
	}

	post, err := c.DefaultPostForParams(params)
	if err != nil {
		return nil, err
	}
	post.Set("instantcapture", boolFlag(params.InstantCapture))

	resp, err := c.Authorize(ctx, post)
	if err != nil {
		return nil, err
	}

	if !resp.Success() {
		return newFailedTransaction(c, resp.ErrorCode(), resp.ErrorMessage()), nil
	}

	return c.findAccepted(ctx, "authorize", resp.Data().Int64("tid"))
}

// findAccepted loads the transaction an accepted authorize created. Failures
// are reported as AcceptedError so callers never mistake them for a failed
// authorize.
func (c *Client) findAccepted(ctx context.Context, action string, id int64) (*Transaction, error) {
	if id <= 0 {
		return nil, &GatewayError{Action: action, Err: ErrMissingTransactionID}
	}

	tx, err := c.FindTransaction(ctx, id)
	if err != nil {
		c.logger.Error("Accepted transaction could not be loaded",
			zap.String("action", action),
			zap.Int64("transactionID", id),
			zap.Error(err))
		return nil, &AcceptedError{Action: action, TransactionID: id, Err: err}
	}

	return tx, nil
}

func (c *Client) CaptureTransaction(ctx context.Context, id, amount int64) (*Transaction, error) {
	return (&Transaction{client: c, id: id}).Capture(ctx, amount)
}

func (c *Client) CreditTransaction(ctx context.Context, id, amount int64) (*Transaction, error) {
	return (&Transaction{client: c, id: id}).Credit(ctx, amount)
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) (*Transaction, error) {
	return (&Transaction{client: c, id: id}).Delete(ctx)
}
