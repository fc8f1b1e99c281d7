// ABOUTME: Newsletter CLI commands
// ABOUTME: Pushes subscribers to MailerLite
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/sadaqahworks/donorledger/clients"
	"github.com/sadaqahworks/donorledger/config"
)

// SubscribeCommand subscribes an email address to the newsletter.
func SubscribeCommand(args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ExitOnError)
	email := fs.String("email", "", "Subscriber email (required)")
	name := fs.String("name", "", "Subscriber name")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	cfg := config.Load()
	if cfg.MailerLiteKey == "" {
		return fmt.Errorf("MAILERLITE_API_KEY is not set")
	}

	client := clients.NewMailerLiteClient(cfg.MailerLiteKey, cfg.MailerLiteGroup)
	if err := client.Subscribe(context.Background(), *email, *name); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	fmt.Printf("✓ Subscribed: %s\n", *email)
	return nil
}
