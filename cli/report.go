// ABOUTME: Reporting CLI commands
// ABOUTME: Per-donor giving summaries over the reconciled ledger
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/sadaqahworks/donorledger/report"
)

// SummaryCommand prints a donor's giving summary.
func SummaryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("donor email is required")
	}
	email := fs.Args()[0]

	summary, err := report.Summarize(database, email)
	if err != nil {
		return err
	}

	fmt.Printf("Giving summary for %s <%s>\n\n", summary.Donor.Name, summary.Donor.Email)
	fmt.Printf("  One-time donations:   %s\n", report.FormatAmount(summary.DonationTotal))
	fmt.Printf("  Event donations:      %s\n", report.FormatAmount(summary.EventDonationTotal))
	fmt.Printf("  Active sponsorships:  %d (%s/month)\n", summary.ActiveSponsorships, report.FormatAmount(summary.MonthlyCommitment))
	fmt.Printf("  Grand total:          %s\n", report.FormatAmount(summary.GrandTotal()))

	return nil
}
