package epay

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Behyna/epay/pkg/soap"
)

// Params is an ordered set of wire fields. Setting an existing key keeps its position.
type Params struct {
	keys   []string
	values map[string]string
}

func NewParams(kv ...string) *Params {
	p := &Params{values: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}

	return p
}

func (p *Params) Set(key, value string) *Params {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value

	return p
}

func (p *Params) Get(key string) string {
	return p.values[key]
}

func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

func (p *Params) Keys() []string {
	return append([]string(nil), p.keys...)
}

func (p *Params) Clone() *Params {
	c := NewParams()
	for _, k := range p.keys {
		c.Set(k, p.values[k])
	}

	return c
}

func (p *Params) Fields() []soap.Field {
	fields := make([]soap.Field, 0, len(p.keys))
	for _, k := range p.keys {
		fields = append(fields, soap.Field{Name: k, Value: p.values[k]})
	}

	return fields
}

func (p *Params) Values() url.Values {
	v := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		v.Set(k, p.values[k])
	}

	return v
}

// PaymentParams are the caller-facing payment fields. Amount is in minor units.
type PaymentParams struct {
	CardNo         string
	CVC            string
	ExpMonth       int
	ExpYear        int
	Amount         int64
	Currency       string
	OrderNo        string
	Description    string
	InstantCapture bool
}

type SubscriptionParams struct {
	CardNo      string
	CVC         string
	ExpMonth    int
	ExpYear     int
	Currency    string
	Description string
}

// DefaultPostForParams maps caller fields to gateway field names and fills in
// the merchant number and default currency. It performs no I/O.
func (c *Client) DefaultPostForParams(params PaymentParams) (*Params, error) {
	currency := params.Currency
	if currency == "" {
		currency = c.cfg.DefaultCurrency
	}

	code, ok := CurrencyCode(currency)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	post := NewParams(
		"merchantnumber", c.cfg.MerchantNumber,
		"amount", strconv.FormatInt(params.Amount, 10),
		"currency", code,
	)

	setIfPresent(post, "cardno", params.CardNo)
	setIfPresent(post, "cvc", params.CVC)
	if params.ExpMonth > 0 {
		post.Set("expmonth", fmt.Sprintf("%02d", params.ExpMonth))
	}
	if params.ExpYear > 0 {
		post.Set("expyear", fmt.Sprintf("%02d", params.ExpYear%100))
	}
	setIfPresent(post, "orderid", params.OrderNo)
	setIfPresent(post, "description", params.Description)

	post.Set("accepturl", c.cfg.AcceptURL)
	post.Set("declineurl", c.cfg.DeclineURL)

	return post, nil
}

func setIfPresent(p *Params, key, value string) {
	if value != "" {
		p.Set(key, value)
	}
}
