package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DONORLEDGER_DB_PATH", "")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("MAILERLITE_API_KEY", "")
	t.Setenv("MAILERLITE_GROUP_ID", "")

	cfg := Load()

	if !strings.HasSuffix(cfg.DBPath, "donorledger/ledger.db") {
		t.Errorf("Expected default DB path, got %s", cfg.DBPath)
	}
	if cfg.StripeKey != "" || cfg.MailerLiteKey != "" {
		t.Errorf("Expected empty API keys, got %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DONORLEDGER_DB_PATH", "/tmp/custom.db")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("MAILERLITE_API_KEY", "ml_key")
	t.Setenv("MAILERLITE_GROUP_ID", "grp_1")

	cfg := Load()

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("Expected custom DB path, got %s", cfg.DBPath)
	}
	if cfg.StripeKey != "sk_test_abc" {
		t.Errorf("Expected Stripe key override, got %s", cfg.StripeKey)
	}
	if cfg.MailerLiteKey != "ml_key" || cfg.MailerLiteGroup != "grp_1" {
		t.Errorf("Expected MailerLite overrides, got %+v", cfg)
	}
}
