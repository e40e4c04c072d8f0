package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	AES       AESConfig       `mapstructure:"aes"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
	// InternalAPIKey authenticates service-to-service calls on /api/v1
	// internal routes. Empty disables those routes.
	InternalAPIKey string `mapstructure:"internal_api_key"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

// PaymentConfig tunes confirmation reconciliation.
type PaymentConfig struct {
	// ToleranceUSD is the absolute underpayment tolerance, converted to the
	// deposit currency at confirmation time and stamped on the resulting
	// ledger entry so reconciliations stay reproducible under audit.
	ToleranceUSD     float64 `mapstructure:"tolerance_usd"`
	FeeRate          float64 `mapstructure:"fee_rate"` // platform fee fraction
	MinConfirmations int     `mapstructure:"min_confirmations"`
}

// RetryConfig tunes the retry sweep.
type RetryConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	BatchSize     int           `mapstructure:"batch_size"`
}

// ProviderConfig holds one external payment provider's credentials.
type ProviderConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// ProvidersConfig maps provider name (kraken, fincra, blockbee) to its config.
type ProvidersConfig map[string]ProviderConfig

type NotifyConfig struct {
	GatewayURL string        `mapstructure:"gateway_url"` // bot notification gateway
	Timeout    time.Duration `mapstructure:"timeout"`
}

type RatesConfig struct {
	OracleURL string        `mapstructure:"oracle_url"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: LKB_.
// Nested keys use underscore: LKB_DATABASE_HOST, LKB_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.internal_api_key", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "lockbay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "lockbay")
	v.SetDefault("aes.key", "")
	v.SetDefault("payment.tolerance_usd", 1.0)
	v.SetDefault("payment.fee_rate", 0.01)
	v.SetDefault("payment.min_confirmations", 1)
	v.SetDefault("retry.sweep_interval", "30s")
	v.SetDefault("retry.batch_size", 50)
	v.SetDefault("notify.gateway_url", "")
	v.SetDefault("notify.timeout", "5s")
	v.SetDefault("rates.oracle_url", "")
	v.SetDefault("rates.cache_ttl", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: LKB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("LKB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
