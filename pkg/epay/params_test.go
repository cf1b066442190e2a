package epay_test

import (
	"testing"

	"github.com/Behyna/epay/pkg/epay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DefaultPostForParams(t *testing.T) {
	client, _ := newTestClient(t)

	t.Run("defaults", func(t *testing.T) {
		post, err := client.DefaultPostForParams(epay.PaymentParams{})
		require.NoError(t, err)

		assert.Equal(t, "12345", post.Get("merchantnumber"))
		assert.Equal(t, "978", post.Get("currency"))
		assert.Equal(t, "0", post.Get("amount"))
		assert.False(t, post.Has("cardno"))
		assert.False(t, post.Has("orderid"))
		assert.Equal(t, authorizeURL+"?accept=1", post.Get("accepturl"))
		assert.Equal(t, authorizeURL+"?decline=1", post.Get("declineurl"))
	})

	t.Run("explicit fields", func(t *testing.T) {
		post, err := client.DefaultPostForParams(epay.PaymentParams{
			CardNo:      "4444444444444444",
			CVC:         "123",
			ExpMonth:    6,
			ExpYear:     2027,
			Amount:      12550,
			Currency:    "dkk",
			OrderNo:     "A-1",
			Description: "Order A-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "208", post.Get("currency"))
		assert.Equal(t, "12550", post.Get("amount"))
		assert.Equal(t, "4444444444444444", post.Get("cardno"))
		assert.Equal(t, "123", post.Get("cvc"))
		assert.Equal(t, "06", post.Get("expmonth"))
		assert.Equal(t, "27", post.Get("expyear"))
		assert.Equal(t, "A-1", post.Get("orderid"))
		assert.Equal(t, "Order A-1", post.Get("description"))
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := client.DefaultPostForParams(epay.PaymentParams{Currency: "XXX"})
		assert.ErrorIs(t, err, epay.ErrUnknownCurrency)
	})
}

func TestParams(t *testing.T) {
	p := epay.NewParams("b", "1", "a", "2")
	p.Set("c", "3").Set("b", "4")

	assert.Equal(t, []string{"b", "a", "c"}, p.Keys())
	assert.Equal(t, "4", p.Get("b"))
	assert.Equal(t, "a=2&b=4&c=3", p.Values().Encode())

	fields := p.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "b", fields[0].Name)
	assert.Equal(t, "4", fields[0].Value)

	clone := p.Clone()
	clone.Set("d", "5")
	assert.False(t, p.Has("d"))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := epay.NewClient(epay.Config{}, nil, nil)
	assert.Error(t, err)

	_, err = epay.NewClient(epay.Config{MerchantNumber: "1", DefaultCurrency: "XXX"}, nil, nil)
	assert.ErrorIs(t, err, epay.ErrUnknownCurrency)

	client, err := epay.NewClient(epay.Config{MerchantNumber: "1"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "DKK", client.Config().DefaultCurrency)
	assert.Equal(t, paymentURL, client.Config().PaymentURL())
	assert.Equal(t, subscriptionURL, client.Config().SubscriptionURL())
}
