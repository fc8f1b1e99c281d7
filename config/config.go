// ABOUTME: Environment configuration for database path and API credentials
// ABOUTME: Loads .env when present; environment variables always win
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Config carries everything the CLI needs beyond its flags.
type Config struct {
	DBPath          string
	StripeKey       string
	MailerLiteKey   string
	MailerLiteGroup string
}

// DefaultDBPath returns the XDG-compliant ledger location.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "donorledger", "ledger.db")
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first, best effort; real environment
// variables override it (godotenv never clobbers existing vars).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:          os.Getenv("DONORLEDGER_DB_PATH"),
		StripeKey:       os.Getenv("STRIPE_SECRET_KEY"),
		MailerLiteKey:   os.Getenv("MAILERLITE_API_KEY"),
		MailerLiteGroup: os.Getenv("MAILERLITE_GROUP_ID"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}

	return cfg
}
