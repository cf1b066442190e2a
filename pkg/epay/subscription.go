package epay

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/Behyna/epay/pkg/soap"
)

// Subscription is a stored card on the gateway. Reload refreshes it in place,
// so every holder of the pointer observes the new state.
type Subscription struct {
	client *Client
	id     int64
	data   soap.Map

	// Only the creation reply carries the obfuscated card number.
	cardNo string
}

// NewSubscriptionFromData builds a subscription from an already fetched record.
func NewSubscriptionFromData(c *Client, data soap.Map) *Subscription {
	return &Subscription{client: c, id: data.Int64("subscriptionid"), data: data}
}

func (s *Subscription) ID() int64 {
	return s.id
}

// Data returns a shallow copy of the record. Nested maps are shared and must
// not be modified.
func (s *Subscription) Data() soap.Map {
	return maps.Clone(s.data)
}

func (s *Subscription) Description() string {
	return s.data.String("description")
}

func (s *Subscription) CreatedAt() time.Time {
	return parseTime(s.data.String("created"))
}

func (s *Subscription) CardNo() string {
	return s.cardNo
}

func (s *Subscription) SetCardNo(cardNo string) {
	s.cardNo = cardNo
}

func (s *Subscription) Valid() bool {
	return !s.data.Has("error")
}

func (s *Subscription) ErrorCode() string {
	return s.data.String("error")
}

// Transactions are returned in gateway order; the last one is the most recent.
func (s *Subscription) Transactions() []*Transaction {
	records := s.data.Map("transactionList").List("TransactionInformationType")

	out := make([]*Transaction, 0, len(records))
	for _, record := range records {
		out = append(out, NewTransactionFromData(s.client, record))
	}

	return out
}

func (s *Subscription) Card() Card {
	if txs := s.Transactions(); len(txs) > 0 {
		return txs[len(txs)-1].Card()
	}

	return Card{
		Number:   s.cardNo,
		ExpYear:  s.data.Int("expyear"),
		ExpMonth: s.data.Int("expmonth"),
		Kind:     cardKindFrom(s.data.String("cardtypeid")),
	}
}

func (s *Subscription) Reload(ctx context.Context) (*Subscription, error) {
	const action = "getsubscriptions"

	call := Call{
		Endpoint: s.client.cfg.SubscriptionURL(),
		Action:   action,
		Params:   NewParams("subscriptionid", strconv.FormatInt(s.id, 10)),
		Success:  ResultFlag(action),
	}

	return Dispatch(ctx, s.client, call, func(resp Response) (*Subscription, error) {
		if !resp.Success() {
			gerr := mapFailure(action, resp, ErrInvalidMerchantNumber, ErrSubscriptionNotFound)
			if gerr.Err == nil {
				gerr.Err = ErrSubscriptionNotFound
			}
			return nil, gerr
		}

		record := matchRecord(resp.Data().Map("subscriptionAry").List("SubscriptionInformationType"), "subscriptionid", s.id)
		if record == nil {
			return nil, fmt.Errorf("%w: id %d", ErrSubscriptionNotFound, s.id)
		}

		s.data = record
		return s, nil
	})
}

// Authorize charges the stored card. A declined charge is not an error: it
// comes back as a failed Transaction carrying the gateway code.
func (s *Subscription) Authorize(ctx context.Context, params PaymentParams) (*Transaction, error) {
	const action = "authorize"

	post, err := s.client.DefaultPostForParams(params)
	if err != nil {
		return nil, err
	}

	post.Set("instantcapture", boolFlag(params.InstantCapture))
	post.Set("subscriptionid", strconv.FormatInt(s.id, 10))

	call := Call{
		Endpoint: s.client.cfg.SubscriptionURL(),
		Action:   action,
		Params:   post,
		Success:  ResultFlag(action),
	}

	return Dispatch(ctx, s.client, call, func(resp Response) (*Transaction, error) {
		if !resp.Success() {
			return newFailedTransaction(s.client, resp.ErrorCode(), resp.ErrorMessage()), nil
		}

		return s.client.findAccepted(ctx, action, resp.Data().Int64("transactionid"))
	})
}

func (s *Subscription) Delete(ctx context.Context) (bool, error) {
	const action = "deletesubscription"

	call := Call{
		Endpoint: s.client.cfg.SubscriptionURL(),
		Action:   action,
		Params:   NewParams("subscriptionid", strconv.FormatInt(s.id, 10)),
		Success:  ResultFlag(action),
	}

	return Dispatch(ctx, s.client, call, func(resp Response) (bool, error) {
		return resp.Success(), nil
	})
}

func (c *Client) FindSubscription(ctx context.Context, id int64) (*Subscription, error) {
	return (&Subscription{client: c, id: id}).Reload(ctx)
}

// CreateSubscription stores a card through the authorization endpoint with a
// zero amount. A rejected card yields a subscription without id whose
// ErrorCode is set; it is not returned as an error.
func (c *Client) CreateSubscription(ctx context.Context, params SubscriptionParams) (*Subscription, error) {
	post, err := c.DefaultPostForParams(PaymentParams{
		CardNo:      params.CardNo,
		CVC:         params.CVC,
		ExpMonth:    params.ExpMonth,
		ExpYear:     params.ExpYear,
		Amount:      0,
		Currency:    params.Currency,
		OrderNo:     c.nextOrderNo(),
		Description: params.Description,
	})
	if err != nil {
		return nil, err
	}

	post.Set("subscription", "1")
	post.Set("subscriptionname", params.Description)

	resp, err := c.Authorize(ctx, post)
	if err != nil {
		return nil, err
	}

	if !resp.Success() {
		return &Subscription{client: c, data: soap.Map{"error": resp.ErrorCode()}}, nil
	}

	sub, err := c.FindSubscription(ctx, resp.Data().Int64("subscriptionid"))
	if err != nil {
		return nil, err
	}
	sub.cardNo = resp.Data().String("tcardno")

	return sub, nil
}

func (c *Client) AllSubscriptions(ctx context.Context) ([]*Subscription, error) {
	const action = "getsubscriptions"

	call := Call{
		Endpoint: c.cfg.SubscriptionURL(),
		Action:   action,
		Success:  ResultFlag(action),
	}

	return Dispatch(ctx, c, call, func(resp Response) ([]*Subscription, error) {
		if !resp.Success() {
			return nil, mapFailure(action, resp, ErrInvalidMerchantNumber)
		}

		records := resp.Data().Map("subscriptionAry").List("SubscriptionInformationType")
		out := make([]*Subscription, 0, len(records))
		for _, record := range records {
			out = append(out, NewSubscriptionFromData(c, record))
		}

		return out, nil
	})
}

func (c *Client) AuthorizeSubscription(ctx context.Context, id int64, params PaymentParams) (*Transaction, error) {
	return (&Subscription{client: c, id: id}).Authorize(ctx, params)
}

func (c *Client) DeleteSubscription(ctx context.Context, id int64) (bool, error) {
	return (&Subscription{client: c, id: id}).Delete(ctx)
}

// matchRecord picks the record whose key equals id, falling back to the only
// record when the gateway omits the key.
func matchRecord(records []soap.Map, key string, id int64) soap.Map {
	for _, r := range records {
		if r.Int64(key) == id {
			return r
		}
	}
	if len(records) == 1 && !records[0].Has(key) {
		return records[0]
	}

	return nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
