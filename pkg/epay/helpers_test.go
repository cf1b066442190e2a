package epay_test

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	subscriptionURL = "https://ssl.ditonlinebetalingssystem.dk/remote/subscription"
	paymentURL      = "https://ssl.ditonlinebetalingssystem.dk/remote/payment"
	authorizeURL    = "https://ssl.ditonlinebetalingssystem.dk/auth/default.aspx"
)

func testConfig() epay.Config {
	return epay.Config{
		MerchantNumber:  "12345",
		DefaultCurrency: "EUR",
		Password:        "secret",
	}
}

func newTestClient(t *testing.T, opts ...epay.Option) (*epay.Client, *mocks.HTTPClient) {
	t.Helper()

	httpClient := &mocks.HTTPClient{}
	client, err := epay.NewClient(testConfig(), httpClient, zap.NewNop(), opts...)
	require.NoError(t, err)

	return client, httpClient
}

func soapAction(action string) interface{} {
	return mock.MatchedBy(func(headers map[string]string) bool {
		return strings.HasSuffix(headers["SOAPAction"], "/"+action)
	})
}

func soapResponse(action, inner string) *http.Response {
	body := `<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body><` + action + `Response xmlns="https://ssl.ditonlinebetalingssystem.dk/remote/">` +
		inner +
		`</` + action + `Response></soap:Body></soap:Envelope>`

	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func redirectResponse(query url.Values) *http.Response {
	return &http.Response{
		StatusCode: http.StatusFound,
		Header:     http.Header{"Location": []string{"https://shop.test/done?" + query.Encode()}},
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

func subscriptionRecord(id string) string {
	return `<SubscriptionInformationType>` +
		`<subscriptionid>` + id + `</subscriptionid>` +
		`<description>Monthly plan</description>` +
		`<created>2024-03-01T10:20:30</created>` +
		`<expmonth>12</expmonth>` +
		`<expyear>25</expyear>` +
		`<cardtypeid>VISA</cardtypeid>` +
		`<transactionList />` +
		`</SubscriptionInformationType>`
}

func transactionRecord(id, status, captured string) string {
	return `<transactionInformation>` +
		`<transactionid>` + id + `</transactionid>` +
		`<orderid>A-1</orderid>` +
		`<authamount>10000</authamount>` +
		`<capturedamount>` + captured + `</capturedamount>` +
		`<creditedamount>0</creditedamount>` +
		`<currency>208</currency>` +
		`<cardtypeid>4</cardtypeid>` +
		`<tcardno>444444XXXXXX4444</tcardno>` +
		`<expmonth>6</expmonth>` +
		`<expyear>27</expyear>` +
		`<status>` + status + `</status>` +
		`<authdate>2024-03-01T10:20:30</authdate>` +
		`</transactionInformation>`
}

func readBody(t *testing.T, body interface{}) string {
	t.Helper()

	r, ok := body.(io.Reader)
	require.True(t, ok)

	b, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(b)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}
