// ABOUTME: Child sponsorship CLI commands
// ABOUTME: Records and lists sponsorships in the local ledger
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
)

// AddSponsorshipCommand records a child sponsorship.
func AddSponsorshipCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-sponsorship", flag.ExitOnError)
	sponsor := fs.String("sponsor", "", "Sponsor name (required)")
	email := fs.String("email", "", "Sponsor email")
	child := fs.String("child", "", "Sponsored child name (required)")
	amount := fs.Int64("amount", 0, "Initial payment in whole currency units")
	monthly := fs.Int64("monthly", 0, "Monthly commitment in whole currency units (required)")
	status := fs.String("status", models.StatusPending, "Sponsorship status")
	paymentIntent := fs.String("payment-intent", "", "Stripe payment intent ID")
	_ = fs.Parse(args)

	if *sponsor == "" {
		return fmt.Errorf("--sponsor is required")
	}
	if *child == "" {
		return fmt.Errorf("--child is required")
	}
	if *monthly <= 0 {
		return fmt.Errorf("--monthly must be a positive whole number")
	}
	if *amount < 0 {
		return fmt.Errorf("--amount must not be negative")
	}

	sponsorship := &models.Sponsorship{
		SponsorName:           *sponsor,
		SponsorEmail:          *email,
		ChildName:             *child,
		Amount:                *amount,
		MonthlyAmount:         *monthly,
		Status:                *status,
		StripePaymentIntentID: *paymentIntent,
	}

	if *email != "" {
		donor, err := db.FindDonorByEmail(database, *email)
		if err != nil {
			return fmt.Errorf("failed to look up donor: %w", err)
		}
		if donor != nil {
			sponsorship.DonorID = &donor.ID
		}
	}

	if err := db.CreateSponsorship(database, sponsorship); err != nil {
		return fmt.Errorf("failed to record sponsorship: %w", err)
	}

	fmt.Printf("✓ Sponsorship recorded: %s sponsors %s at %d/month (ID: %s)\n",
		sponsorship.SponsorName, sponsorship.ChildName, sponsorship.MonthlyAmount, sponsorship.ID)
	if sponsorship.DonorID != nil {
		fmt.Printf("  Linked to donor: %s\n", sponsorship.DonorID)
	}

	return nil
}

// ListSponsorshipsCommand lists sponsorships.
func ListSponsorshipsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-sponsorships", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	sponsorships, err := db.ListSponsorships(database, *status, *limit)
	if err != nil {
		return fmt.Errorf("failed to list sponsorships: %w", err)
	}

	if len(sponsorships) == 0 {
		fmt.Println("No sponsorships found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SPONSOR\tEMAIL\tCHILD\tMONTHLY\tSTATUS\tLINKED\tRECEIPT\tID")
	_, _ = fmt.Fprintln(w, "-------\t-----\t-----\t-------\t------\t------\t-------\t--")

	for _, s := range sponsorships {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			s.SponsorName, dash(s.SponsorEmail), s.ChildName, s.MonthlyAmount, s.Status,
			yesNo(s.DonorID != nil), yesNo(s.ReceiptURL != ""), s.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d sponsorship(s)\n", len(sponsorships))
	return nil
}
