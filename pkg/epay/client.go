package epay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Behyna/epay/pkg/httpclient"
	"github.com/Behyna/epay/pkg/soap"
	"go.uber.org/zap"
)

const (
	OutcomeSuccess        = "success"
	OutcomeDeclined       = "declined"
	OutcomeTransportError = "transport_error"
)

// Observer receives one event per gateway call.
type Observer interface {
	ObserveCall(action, outcome string, duration time.Duration)
}

type Option func(*Client)

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func WithDecoder(d *soap.Decoder) Option {
	return func(c *Client) {
		c.decoder = d
	}
}

// Call describes one SOAP action. Success decides what a successful reply looks like.
type Call struct {
	Endpoint string
	Action   string
	Params   *Params
	Success  SuccessPolicy
}

type Client struct {
	cfg      Config
	http     httpclient.HTTPClient
	logger   *zap.Logger
	decoder  *soap.Decoder
	observer Observer
	now      func() time.Time

	orderMu   sync.Mutex
	lastOrder int64
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient, logger *zap.Logger, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		http:    httpClient,
		logger:  logger,
		decoder: soap.NewDecoder("SubscriptionInformationType", "TransactionInformationType"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	return c, nil
}

func (c *Client) Config() Config {
	return c.cfg
}

// Do performs a SOAP call. A gateway-reported failure is not an error here;
// it is returned as an unsuccessful Response for the caller to interpret.
func (c *Client) Do(ctx context.Context, call Call) (Response, error) {
	params := NewParams("merchantnumber", c.cfg.MerchantNumber)
	if call.Params != nil {
		for _, k := range call.Params.keys {
			params.Set(k, call.Params.values[k])
		}
	}
	if c.cfg.Password != "" {
		params.Set("pwd", c.cfg.Password)
	}

	body, err := soap.Envelope(soapNamespace(call.Endpoint), call.Action, params.Fields())
	if err != nil {
		return Response{}, fmt.Errorf("epay: encoding %s: %w", call.Action, err)
	}

	headers := map[string]string{
		"Content-Type": "text/xml; charset=utf-8",
		"SOAPAction":   call.Endpoint + "/" + call.Action,
	}

	start := time.Now()
	raw, err := c.post(ctx, call.Action, call.Endpoint, bytes.NewReader(body), headers, c.decodeSOAP)
	if err != nil {
		c.observe(call.Action, OutcomeTransportError, start)
		c.logger.Error("gateway call failed",
			zap.String("action", call.Action),
			zap.String("endpoint", call.Endpoint),
			zap.Error(err))
		return Response{}, err
	}

	success := call.Success
	if success == nil {
		success = ResultFlag(call.Action)
	}

	return c.finish(NewResponse(call.Action, raw, success), start), nil
}

// Dispatch runs call and hands the reply to handle, which decides what the
// reply means for this action. Transport failures never reach handle.
func Dispatch[T any](ctx context.Context, c *Client, call Call, handle func(Response) (T, error)) (T, error) {
	resp, err := c.Do(ctx, call)
	if err != nil {
		var zero T
		return zero, err
	}

	return handle(resp)
}

// Authorize posts to the browser authorization endpoint. The result arrives as
// the query string of the redirect Location, or as a query-string body.
func (c *Client) Authorize(ctx context.Context, post *Params) (Response, error) {
	const action = "authorize"

	form := NewParams("merchantnumber", c.cfg.MerchantNumber)
	if post != nil {
		for _, k := range post.keys {
			form.Set(k, post.values[k])
		}
	}
	if c.cfg.Password != "" && !form.Has("pwd") {
		form.Set("pwd", c.cfg.Password)
	}

	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

	start := time.Now()
	raw, err := c.post(ctx, action, c.cfg.AuthorizeURL(), strings.NewReader(form.Values().Encode()), headers, parseRedirect)
	if err != nil {
		c.observe(action, OutcomeTransportError, start)
		c.logger.Error("authorization failed", zap.Error(err))
		return Response{}, err
	}

	return c.finish(NewResponse(action, raw, AcceptFlag), start), nil
}

func (c *Client) finish(resp Response, start time.Time) Response {
	if resp.Success() {
		c.observe(resp.Action(), OutcomeSuccess, start)
		c.logger.Debug("gateway call succeeded",
			zap.String("action", resp.Action()),
			zap.Duration("duration", time.Since(start)))
		return resp
	}

	c.observe(resp.Action(), OutcomeDeclined, start)
	c.logger.Warn("gateway declined call",
		zap.String("action", resp.Action()),
		zap.String("error_code", resp.ErrorCode()),
		zap.String("error_message", resp.ErrorMessage()))

	return resp
}

type decodeFunc func(*http.Response) (soap.Map, error)

func (c *Client) post(ctx context.Context, action, endpoint string, body io.Reader, headers map[string]string, decode decodeFunc) (soap.Map, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.http.Post(ctx, endpoint, body, headers)
	if err != nil {
		return nil, &TransportError{Action: action, URL: endpoint, Err: err}
	}
	if resp == nil {
		return nil, &TransportError{Action: action, URL: endpoint, Err: errors.New("empty response")}
	}
	defer resp.Body.Close()

	raw, err := decode(resp)
	if err != nil {
		return nil, &TransportError{Action: action, URL: endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	return raw, nil
}

// decodeSOAP rejects non-2xx replies; a SOAP Fault arrives as a 500 and its
// faultstring becomes the error text.
func (c *Client) decodeSOAP(resp *http.Response) (soap.Map, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, err := c.decoder.Decode(resp.Body)
		if err == nil {
			if fault := raw.Map("Fault"); fault != nil && fault.String("faultstring") != "" {
				return nil, fmt.Errorf("soap fault: %s", fault.String("faultstring"))
			}
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return c.decoder.Decode(resp.Body)
}

func parseRedirect(resp *http.Response) (soap.Map, error) {
	if location := resp.Header.Get("Location"); location != "" {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parsing redirect location: %w", err)
		}
		return queryMap(u.Query()), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(string(body))
	if i := strings.IndexByte(query, '?'); i >= 0 {
		query = query[i+1:]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("parsing authorization reply: %w", err)
	}

	return queryMap(values), nil
}

func queryMap(values url.Values) soap.Map {
	m := make(soap.Map, len(values))
	for k := range values {
		m[k] = values.Get(k)
	}

	return m
}

func (c *Client) observe(action, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveCall(action, outcome, time.Since(start))
	}
}

func soapNamespace(endpoint string) string {
	return namespace + path.Base(endpoint)
}

// nextOrderNo returns a unique order reference in units of 1e-4 seconds.
func (c *Client) nextOrderNo() string {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()

	n := c.now().UnixNano() / 1e5
	if n <= c.lastOrder {
		n = c.lastOrder + 1
	}
	c.lastOrder = n

	return strconv.FormatInt(n, 10)
}
