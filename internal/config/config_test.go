//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("PORT", "8081")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Stripe.SecretKey != "sk_test_123" || cfg.Stripe.WebhookSecret != "whsec_123" {
		t.Errorf("stripe secrets not loaded from env: %+v", cfg.Stripe)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("port = %d, want 8081", cfg.HTTP.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("default backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Payment.PlatformFeeBps != 2000 {
		t.Errorf("default fee bps = %d, want 2000", cfg.Payment.PlatformFeeBps)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
http:
  port: 9000
  trust_proxy: true
stripe:
  secret_key: sk_from_file
  webhook_secret: whsec_from_file
payment:
  platform_fee_bps: 1500
`)
	t.Setenv("STRIPE_SECRET_KEY", "sk_from_env")

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Stripe.SecretKey != "sk_from_env" {
		t.Errorf("secret key = %q, want env value", cfg.Stripe.SecretKey)
	}
	if cfg.Stripe.WebhookSecret != "whsec_from_file" {
		t.Errorf("webhook secret = %q, want file value", cfg.Stripe.WebhookSecret)
	}
	if cfg.HTTP.Port != 9000 || !cfg.HTTP.TrustProxy {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Payment.PlatformFeeBps != 1500 {
		t.Errorf("fee bps = %d, want 1500", cfg.Payment.PlatformFeeBps)
	}
	if !cfg.Runtime.Dev {
		t.Error("expected dev runtime flag")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Run("missing secrets", func(t *testing.T) {
		t.Setenv("STRIPE_SECRET_KEY", "")
		t.Setenv("STRIPE_WEBHOOK_SECRET", "")
		if _, err := LoadConfig("", false); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("redis backend without url", func(t *testing.T) {
		t.Setenv("STRIPE_SECRET_KEY", "sk")
		t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec")
		t.Setenv("STORE_BACKEND", "redis")
		t.Setenv("REDIS_URL", "")
		_, err := LoadConfig("", false)
		if err == nil || !strings.Contains(err.Error(), "store.redis.url") {
			t.Fatalf("expected redis url error, got %v", err)
		}
	})

	t.Run("postgres backend without url", func(t *testing.T) {
		t.Setenv("STRIPE_SECRET_KEY", "sk")
		t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec")
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := LoadConfig("", false)
		if err == nil || !strings.Contains(err.Error(), "store.postgres.url") {
			t.Fatalf("expected postgres url error, got %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STRIPE_SECRET_KEY", "sk")
		t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec")
		t.Setenv("STORE_BACKEND", "mysql")
		if _, err := LoadConfig("", false); err == nil {
			t.Fatal("expected validation error for unknown backend")
		}
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("STRIPE_SECRET_KEY", "sk")
		t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec")
		t.Setenv("PORT", "http")
		if _, err := LoadConfig("", false); err == nil {
			t.Fatal("expected PORT parse error")
		}
	})
}

func TestApplyEnv_CORSOrigins(t *testing.T) {
	env := map[string]string{"CORS_ORIGINS": "https://a.test, https://b.test"}
	var cfg Config
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://b.test" {
		t.Fatalf("origins = %v", cfg.HTTP.CORSOrigins)
	}
}
