// ABOUTME: Aggregate queries for donor giving summaries
// ABOUTME: Integer SUMs over the three ledger tables for one donor
package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/models"
)

// SumDonationsForDonor totals all one-time donations for a donor,
// regardless of status.
func SumDonationsForDonor(db *sql.DB, donorID uuid.UUID) (int64, error) {
	var total int64
	err := db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM donations WHERE donor_id = ?
	`, donorID.String()).Scan(&total)
	return total, err
}

// SumEventDonationsForDonor totals all event donations for a donor,
// regardless of status.
func SumEventDonationsForDonor(db *sql.DB, donorID uuid.UUID) (int64, error) {
	var total int64
	err := db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM event_donations WHERE donor_id = ?
	`, donorID.String()).Scan(&total)
	return total, err
}

// ActiveSponsorshipsForDonor returns the count and summed monthly
// commitment of a donor's sponsorships, counting active ones only.
func ActiveSponsorshipsForDonor(db *sql.DB, donorID uuid.UUID) (count int, monthlyTotal int64, err error) {
	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(monthly_amount), 0)
		FROM sponsorships
		WHERE donor_id = ? AND status = ?
	`, donorID.String(), models.StatusActive).Scan(&count, &monthlyTotal)
	return count, monthlyTotal, err
}
