// ABOUTME: Donor giving summary reporter
// ABOUTME: Read-only aggregation over the linked, enriched ledger
package report

import (
	"database/sql"
	"fmt"

	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
	"github.com/sadaqahworks/donorledger/reconcile"
)

// DonorSummary aggregates one donor's ledger rows. All totals are int64
// whole currency units; nothing here touches floating point.
type DonorSummary struct {
	Donor              models.Donor
	DonationTotal      int64 // all one-time donations, any status
	EventDonationTotal int64 // all event donations, any status
	ActiveSponsorships int
	MonthlyCommitment  int64 // summed monthly amount, active sponsorships only
}

// GrandTotal combines the three constituent totals.
func (s *DonorSummary) GrandTotal() int64 {
	return s.DonationTotal + s.EventDonationTotal + s.MonthlyCommitment
}

// Summarize resolves a donor by email and totals their giving. One-time
// totals deliberately ignore status while sponsorships count active rows
// only; that asymmetry is long-standing observed behavior of the platform.
func Summarize(database *sql.DB, email string) (*DonorSummary, error) {
	donor, err := db.FindDonorByEmail(database, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up donor: %w", err)
	}
	if donor == nil {
		return nil, fmt.Errorf("%w: %s", reconcile.ErrDonorNotFound, email)
	}

	summary := &DonorSummary{Donor: *donor}

	summary.DonationTotal, err = db.SumDonationsForDonor(database, donor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}

	summary.EventDonationTotal, err = db.SumEventDonationsForDonor(database, donor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum event donations: %w", err)
	}

	summary.ActiveSponsorships, summary.MonthlyCommitment, err = db.ActiveSponsorshipsForDonor(database, donor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sponsorships: %w", err)
	}

	return summary, nil
}

// FormatAmount compacts a whole-unit amount for display, using a K suffix
// above one thousand. Pure formatting: totals stay integer upstream.
func FormatAmount(amount int64) string {
	if amount < 1000 {
		return fmt.Sprintf("%d", amount)
	}

	thousands := amount / 1000
	tenths := (amount % 1000) / 100
	if tenths == 0 {
		return fmt.Sprintf("%dK", thousands)
	}
	return fmt.Sprintf("%d.%dK", thousands, tenths)
}
