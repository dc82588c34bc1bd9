package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type HTTPConfig struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`
	// Honour X-Forwarded-Proto / X-Forwarded-Host when building redirect URLs.
	TrustProxy  bool     `yaml:"trust_proxy"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type LogConfig struct {
	Level    string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format   string `yaml:"format" validate:"oneof=json console"`
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key" validate:"required"`
	WebhookSecret string `yaml:"webhook_secret" validate:"required"`
	// Override for tests or stripe-mock; empty means the public API.
	APIURL string `yaml:"api_url"`
}

type PaymentConfig struct {
	// Platform cut in basis points of the charged amount.
	PlatformFeeBps int64 `yaml:"platform_fee_bps" validate:"min=0,max=10000"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type PostgresConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns" validate:"min=0"`
}

type StoreConfig struct {
	Backend  string         `yaml:"backend" validate:"oneof=memory redis postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Stripe  StripeConfig  `yaml:"stripe"`
	Payment PaymentConfig `yaml:"payment"`
	Store   StoreConfig   `yaml:"store"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the optional YAML file at path, then applies .env and process
// environment overrides, fills defaults and validates the result.
// A missing file is not an error; env-only deployments are supported.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	cfg.Runtime.Dev = dev

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("STRIPE_SECRET_KEY", &cfg.Stripe.SecretKey)
	str("STRIPE_WEBHOOK_SECRET", &cfg.Stripe.WebhookSecret)
	str("STRIPE_API_URL", &cfg.Stripe.APIURL)
	str("STORE_BACKEND", &cfg.Store.Backend)
	str("REDIS_URL", &cfg.Store.Redis.URL)
	str("REDIS_PASSWORD", &cfg.Store.Redis.Password)
	str("DATABASE_URL", &cfg.Store.Postgres.URL)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.HTTP.Port = port
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.HTTP.CORSOrigins = origins
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 3000
	}
	if len(cfg.HTTP.CORSOrigins) == 0 {
		cfg.HTTP.CORSOrigins = []string{"*"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Payment.PlatformFeeBps == 0 {
		cfg.Payment.PlatformFeeBps = 2000
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Store.Redis.Key == "" {
		cfg.Store.Redis.Key = "subscriptions"
	}
	if cfg.Store.Postgres.MaxConns == 0 {
		cfg.Store.Postgres.MaxConns = 10
	}
}

var validate = validator.New()

// Validate checks struct constraints plus the cross-field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Store.Backend == "redis" && cfg.Store.Redis.URL == "" {
		return errors.New("invalid config: store.redis.url is required for the redis backend")
	}
	if cfg.Store.Backend == "postgres" && cfg.Store.Postgres.URL == "" {
		return errors.New("invalid config: store.postgres.url is required for the postgres backend")
	}
	return nil
}
