// ABOUTME: Donor CLI commands
// ABOUTME: Human-friendly commands for managing donor identities
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/sadaqahworks/donorledger/clients"
	"github.com/sadaqahworks/donorledger/config"
	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
)

// subscribeToNewsletter pushes a donor to the newsletter service.
// Failures are non-fatal - the local record already exists.
func subscribeToNewsletter(email, name string) {
	cfg := config.Load()
	if cfg.MailerLiteKey == "" {
		return // newsletter not configured, silently skip
	}

	client := clients.NewMailerLiteClient(cfg.MailerLiteKey, cfg.MailerLiteGroup)
	if err := client.Subscribe(context.Background(), email, name); err != nil {
		log.Printf("warning: newsletter subscription failed: %v", err)
	}
}

// AddDonorCommand adds a new donor.
func AddDonorCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-donor", flag.ExitOnError)
	name := fs.String("name", "", "Donor name (required)")
	email := fs.String("email", "", "Email address (required)")
	subscribe := fs.Bool("subscribe", false, "Subscribe donor to the newsletter")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	existing, err := db.FindDonorByEmail(database, *email)
	if err != nil {
		return fmt.Errorf("failed to check existing donor: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("donor already exists for %s (ID: %s)", *email, existing.ID)
	}

	donor := &models.Donor{
		Name:  *name,
		Email: *email,
	}

	if err := db.CreateDonor(database, donor); err != nil {
		return fmt.Errorf("failed to create donor: %w", err)
	}

	if *subscribe {
		subscribeToNewsletter(donor.Email, donor.Name)
	}

	fmt.Printf("✓ Donor created: %s (ID: %s)\n", donor.Name, donor.ID)
	fmt.Printf("  Email: %s\n", donor.Email)

	return nil
}

// ListDonorsCommand lists donors.
func ListDonorsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-donors", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or email")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	donors, err := db.FindDonors(database, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to find donors: %w", err)
	}

	if len(donors) == 0 {
		fmt.Println("No donors found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t--")

	for _, donor := range donors {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", donor.Name, donor.Email, donor.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d donor(s)\n", len(donors))
	return nil
}
