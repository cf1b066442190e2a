package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/epay/pkg/epay"
	"github.com/Behyna/epay/pkg/mq"
	"github.com/spf13/viper"
)

const envPrefix = "EPAY"

type Config struct {
	API      API         `mapstructure:"api"`
	Epay     epay.Config `mapstructure:"epay"`
	RabbitMQ mq.Config   `mapstructure:"rabbitmq"`
	Billing  Billing     `mapstructure:"billing"`
}

type API struct {
	Port        string `mapstructure:"port"`
	ServiceName string `mapstructure:"service_name"`
}

type Billing struct {
	Schedule     string        `mapstructure:"schedule"`
	Queue        string        `mapstructure:"queue"`
	Amount       int64         `mapstructure:"amount"`
	Currency     string        `mapstructure:"currency"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from dir. Any key can be overridden from the
// environment, e.g. EPAY_EPAY_MERCHANT_NUMBER for epay.merchant_number.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.port", ":8080")
	v.SetDefault("api.service_name", "epay")
	v.SetDefault("epay.default_currency", epay.DefaultCurrency)
	v.SetDefault("epay.timeout", epay.DefaultTimeout)
	v.SetDefault("rabbitmq.prefetch", 1)
	v.SetDefault("billing.schedule", "0 6 1 * *")
	v.SetDefault("billing.queue", "epay.billing.charge")
	v.SetDefault("billing.max_retries", 3)
	v.SetDefault("billing.retry_backoff", 2*time.Second)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
