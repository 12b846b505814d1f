package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Checkout     CheckoutConfig
	Gateway      GatewayConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Checkout.TaxRatePercent.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative, got %s", cfg.Checkout.TaxRatePercent)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POSDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"POSDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"POSDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POSDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"POSDESK_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"POSDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"POSDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"POSDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POSDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POSDESK_REDIS_URL"`
	Address      string        `envconfig:"POSDESK_REDIS_ADDR"`
	Password     string        `envconfig:"POSDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"POSDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POSDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POSDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POSDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POSDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POSDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CheckoutConfig tunes the pricing and session behavior of the register.
type CheckoutConfig struct {
	TaxRatePercent decimal.Decimal `envconfig:"POSDESK_TAX_RATE_PERCENT" default:"8.25"`
	Currency       string          `envconfig:"POSDESK_CURRENCY" default:"USD"`
	SessionTTL     time.Duration   `envconfig:"POSDESK_SESSION_TTL" default:"24h"`
}

// GatewayConfig configures the payment processor boundary. The simulated
// processor is the only mode wired today; the merchant reference prefix
// ends up on every outbound payment request.
type GatewayConfig struct {
	Mode              string        `envconfig:"POSDESK_GATEWAY_MODE" default:"simulated"`
	MerchantRefPrefix string        `envconfig:"POSDESK_GATEWAY_MERCHANT_REF_PREFIX" default:"posdesk"`
	Timeout           time.Duration `envconfig:"POSDESK_GATEWAY_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"POSDESK_AUTO_MIGRATE" default:"false"`
}
