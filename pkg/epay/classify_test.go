package epay_test

import (
	"errors"
	"testing"

	"github.com/Behyna/epay/pkg/epay"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	transient := []string{
		"-5511", "100", "102", "116", "121", "255", "256", "906",
		"907", "910", "911", "912", "915", "920", "921", "923",
		"945", "946", "-1000", "-1005", "-23", "-3", "-4",
	}

	t.Run("transient codes", func(t *testing.T) {
		for _, code := range transient {
			c := epay.Classify(code)
			assert.Equal(t, epay.ClassTransient, c.Class, code)
			assert.ErrorIs(t, c.Err, epay.ErrTemporary)
			assert.True(t, epay.IsTemporaryErrorCode(code))
		}
	})

	t.Run("exact match only", func(t *testing.T) {
		for _, code := range []string{"", "0", "51", "1000", "-5", "1005", " 100", "100 ", "0100", "-55", "9060", "5511"} {
			assert.NotEqual(t, epay.ClassTransient, epay.Classify(code).Class, code)
			assert.False(t, epay.IsTemporaryErrorCode(code), code)
		}
	})

	t.Run("domain codes", func(t *testing.T) {
		testCases := []struct {
			code string
			err  error
		}{
			{epay.CodeInvalidMerchantNumber, epay.ErrInvalidMerchantNumber},
			{epay.CodeTransactionNotFound, epay.ErrTransactionNotFound},
			{epay.CodeSubscriptionNotFound, epay.ErrSubscriptionNotFound},
			{epay.CodeTransactionAlreadyCaptured, epay.ErrTransactionAlreadyCaptured},
			{epay.CodeAuthorizationNotFound, epay.ErrAuthorizationNotFound},
			{epay.CodeTransactionInGracePeriod, epay.ErrTransactionInGracePeriod},
		}

		for _, tc := range testCases {
			c := epay.Classify(tc.code)
			assert.Equal(t, epay.ClassDomain, c.Class)
			assert.True(t, errors.Is(c.Err, tc.err))
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		c := epay.Classify("51")
		assert.Equal(t, epay.ClassUnknown, c.Class)
		assert.NoError(t, c.Err)
		assert.Equal(t, "unknown", c.Class.String())
	})
}

func TestGatewayError(t *testing.T) {
	err := &epay.GatewayError{Action: "capture", Code: "-1010", Message: "already captured", Err: epay.ErrTransactionAlreadyCaptured}

	assert.ErrorIs(t, err, epay.ErrTransactionAlreadyCaptured)
	assert.False(t, err.Temporary())
	assert.Contains(t, err.Error(), "-1010")
	assert.Contains(t, err.Error(), "already captured")

	temp := &epay.GatewayError{Action: "authorize", Code: "-23", Err: epay.ErrTemporary}
	assert.True(t, temp.Temporary())
	assert.True(t, epay.IsTemporary(temp))
	assert.False(t, epay.IsTemporary(errors.New("plain")))
}
