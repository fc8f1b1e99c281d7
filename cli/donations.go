// ABOUTME: One-time donation CLI commands
// ABOUTME: Records and lists donations in the local ledger
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

// AddDonationCommand records a one-time donation.
func AddDonationCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-donation", flag.ExitOnError)
	name := fs.String("name", "", "Donor name as given at checkout (required)")
	email := fs.String("email", "", "Contact email")
	amount := fs.Int64("amount", 0, "Amount in whole currency units (required)")
	status := fs.String("status", models.StatusPending, "Donation status")
	paymentIntent := fs.String("payment-intent", "", "Stripe payment intent ID")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *amount <= 0 {
		return fmt.Errorf("--amount must be a positive whole number")
	}

	donation := &models.Donation{
		DonorName:             *name,
		Email:                 *email,
		Amount:                *amount,
		Status:                *status,
		StripePaymentIntentID: *paymentIntent,
	}

	// Link immediately when the contact email already belongs to a donor
	if *email != "" {
		donor, err := db.FindDonorByEmail(database, *email)
		if err != nil {
			return fmt.Errorf("failed to look up donor: %w", err)
		}
		if donor != nil {
			donation.DonorID = &donor.ID
		}
	}

	if err := db.CreateDonation(database, donation); err != nil {
		return fmt.Errorf("failed to record donation: %w", err)
	}

	fmt.Printf("✓ Donation recorded: %s gave %d (ID: %s)\n", donation.DonorName, donation.Amount, donation.ID)
	if donation.DonorID != nil {
		fmt.Printf("  Linked to donor: %s\n", donation.DonorID)
	}

	return nil
}

// ListDonationsCommand lists donations.
func ListDonationsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-donations", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	donations, err := db.ListDonations(database, *status, *limit)
	if err != nil {
		return fmt.Errorf("failed to list donations: %w", err)
	}

	if len(donations) == 0 {
		fmt.Println("No donations found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tAMOUNT\tSTATUS\tLINKED\tRECEIPT\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t------\t------\t------\t-------\t--")

	for _, d := range donations {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			d.DonorName, dash(d.Email), d.Amount, d.Status, yesNo(d.DonorID != nil), yesNo(d.ReceiptURL != ""), d.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d donation(s)\n", len(donations))
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
