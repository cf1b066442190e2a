package epay

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultHost     = "ssl.ditonlinebetalingssystem.dk"
	DefaultCurrency = "DKK"
	DefaultTimeout  = 30 * time.Second

	PaymentPath      = "/remote/payment"
	SubscriptionPath = "/remote/subscription"
	AuthorizePath    = "/auth/default.aspx"

	namespace = "https://ssl.ditonlinebetalingssystem.dk/remote/"
)

type Config struct {
	MerchantNumber  string        `mapstructure:"merchant_number"`
	DefaultCurrency string        `mapstructure:"default_currency"`
	Password        string        `mapstructure:"password"`
	Host            string        `mapstructure:"host"`
	Scheme          string        `mapstructure:"scheme"`
	Timeout         time.Duration `mapstructure:"timeout"`
	AcceptURL       string        `mapstructure:"accept_url"`
	DeclineURL      string        `mapstructure:"decline_url"`
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Scheme == "" {
		c.Scheme = "https"
	}
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = DefaultCurrency
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.AcceptURL == "" {
		c.AcceptURL = c.AuthorizeURL() + "?accept=1"
	}
	if c.DeclineURL == "" {
		c.DeclineURL = c.AuthorizeURL() + "?decline=1"
	}

	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.MerchantNumber) == "" {
		return errors.New("epay: merchant number is required")
	}
	if _, ok := CurrencyCode(c.DefaultCurrency); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, c.DefaultCurrency)
	}

	return nil
}

func (c Config) baseURL() string {
	return c.Scheme + "://" + c.Host
}

func (c Config) PaymentURL() string {
	return c.baseURL() + PaymentPath
}

func (c Config) SubscriptionURL() string {
	return c.baseURL() + SubscriptionPath
}

func (c Config) AuthorizeURL() string {
	return c.baseURL() + AuthorizePath
}
