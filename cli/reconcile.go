// ABOUTME: Reconciliation CLI commands
// ABOUTME: Donor identity linking and Stripe receipt backfill over the ledger
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sadaqahworks/donorledger/clients"
	"github.com/sadaqahworks/donorledger/config"
	"github.com/sadaqahworks/donorledger/models"
	"github.com/sadaqahworks/donorledger/reconcile"
)

// LinkCommand links unlinked contribution records to a donor by alias email.
func LinkCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("link", flag.ExitOnError)
	donor := fs.String("donor", "", "Email resolving the target donor (required)")
	mode := fs.String("mode", string(models.MatchExact), "Alias matching: exact or substring")
	_ = fs.Parse(args)

	if *donor == "" {
		return fmt.Errorf("--donor is required")
	}

	matchMode := models.MatchMode(*mode)
	if matchMode != models.MatchExact && matchMode != models.MatchSubstring {
		return fmt.Errorf("invalid --mode %q: use exact or substring", *mode)
	}
	if matchMode == models.MatchSubstring && len(fs.Args()) != 1 {
		return fmt.Errorf("substring mode takes exactly one pattern argument")
	}

	// Positional args are alias emails (or the pattern); default to the
	// donor's own email
	aliases := fs.Args()

	report, err := reconcile.Link(database, reconcile.LinkRequest{
		DonorEmails: []string{*donor},
		Aliases:     aliases,
		Mode:        matchMode,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Linking records to %s <%s>\n", report.Donor.Name, report.Donor.Email)
	if len(aliases) > 0 {
		fmt.Printf("Aliases (%s): %s\n", matchMode, strings.Join(aliases, ", "))
	}

	if len(report.Records) == 0 {
		fmt.Println("\nNo unlinked records matched")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tNAME\tEMAIL\tAMOUNT\tRESULT")
	_, _ = fmt.Fprintln(w, "----\t----\t-----\t------\t------")
	for _, rec := range report.Records {
		result := "linked"
		if !rec.Linked {
			result = "skipped"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", rec.Kind, rec.Name, dash(rec.Email), rec.Amount, result)
	}
	_ = w.Flush()

	fmt.Printf("\n✓ Linked %d record(s), skipped %d\n", report.Linked, report.Skipped)
	return nil
}

// BackfillReceiptsCommand fetches missing Stripe receipt URLs for settled
// contributions and stores them.
func BackfillReceiptsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("backfill-receipts", flag.ExitOnError)
	kind := fs.String("kind", "all", "Ledger to process: donations, sponsorships, events, or all")
	_ = fs.Parse(args)

	var kinds []models.ContributionKind
	switch *kind {
	case "all":
		// empty slice means every kind
	case "donations":
		kinds = []models.ContributionKind{models.KindDonation}
	case "sponsorships":
		kinds = []models.ContributionKind{models.KindSponsorship}
	case "events":
		kinds = []models.ContributionKind{models.KindEventDonation}
	default:
		return fmt.Errorf("invalid --kind %q: use donations, sponsorships, events, or all", *kind)
	}

	cfg := config.Load()
	if cfg.StripeKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	source := clients.NewStripeClient(cfg.StripeKey)

	report, err := reconcile.Backfill(context.Background(), database, source, kinds...)
	if err != nil {
		return err
	}

	if len(report.Records) == 0 {
		fmt.Println("No records awaiting receipts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tNAME\tPAYMENT INTENT\tRESULT\tRECEIPT")
	_, _ = fmt.Fprintln(w, "----\t----\t--------------\t------\t-------")
	for _, rec := range report.Records {
		detail := dash(rec.ReceiptURL)
		if rec.Err != nil {
			detail = rec.Err.Error()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rec.Kind, rec.Name, rec.PaymentIntentID, rec.Outcome, detail)
	}
	_ = w.Flush()

	fmt.Printf("\n✓ Updated %d, pending %d, failed %d", report.Updated, report.Pending, report.Failed)
	if report.Raced > 0 {
		fmt.Printf(", raced %d", report.Raced)
	}
	fmt.Println()

	if report.Failed > 0 {
		return fmt.Errorf("%d record(s) failed; re-run to retry", report.Failed)
	}
	return nil
}
