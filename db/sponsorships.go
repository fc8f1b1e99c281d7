// ABOUTME: Child sponsorship database operations
// ABOUTME: Handles sponsorship recording, listing, and reconciliation queries
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/models"
)

func CreateSponsorship(db *sql.DB, sponsorship *models.Sponsorship) error {
	sponsorship.ID = uuid.New()
	sponsorship.CreatedAt = time.Now()

	if sponsorship.Status == "" {
		sponsorship.Status = models.StatusPending
	}

	var donorID *string
	if sponsorship.DonorID != nil {
		s := sponsorship.DonorID.String()
		donorID = &s
	}

	_, err := db.Exec(`
		INSERT INTO sponsorships (id, donor_id, sponsor_name, sponsor_email, child_name, amount, monthly_amount, status, stripe_payment_intent_id, receipt_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sponsorship.ID.String(), donorID, sponsorship.SponsorName, sponsorship.SponsorEmail, sponsorship.ChildName,
		sponsorship.Amount, sponsorship.MonthlyAmount, sponsorship.Status,
		nullIfEmpty(sponsorship.StripePaymentIntentID), nullIfEmpty(sponsorship.ReceiptURL), sponsorship.CreatedAt)

	return err
}

func ListSponsorships(db *sql.DB, status string, limit int) ([]models.Sponsorship, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.Query(`
			SELECT id, donor_id, sponsor_name, sponsor_email, child_name, amount, monthly_amount, status, stripe_payment_intent_id, receipt_url, created_at
			FROM sponsorships
			WHERE status = ?
			ORDER BY created_at DESC
			LIMIT ?
		`, status, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, donor_id, sponsor_name, sponsor_email, child_name, amount, monthly_amount, status, stripe_payment_intent_id, receipt_url, created_at
			FROM sponsorships
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSponsorships(rows)
}

func FindUnlinkedSponsorships(db *sql.DB, aliases []string, mode models.MatchMode) ([]models.Sponsorship, error) {
	where, args := emailMatchClause("sponsor_email", aliases, mode)
	if where == "" {
		return nil, nil
	}

	rows, err := db.Query(`
		SELECT id, donor_id, sponsor_name, sponsor_email, child_name, amount, monthly_amount, status, stripe_payment_intent_id, receipt_url, created_at
		FROM sponsorships
		WHERE donor_id IS NULL AND `+where+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSponsorships(rows)
}

func ClaimSponsorshipForDonor(db *sql.DB, id, donorID uuid.UUID) (bool, error) {
	res, err := db.Exec(`
		UPDATE sponsorships SET donor_id = ? WHERE id = ? AND donor_id IS NULL
	`, donorID.String(), id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// FindSponsorshipsMissingReceipts returns sponsorships whose initial charge
// settled (completed, or active with the first payment captured) but whose
// receipt URL has not been stored yet.
func FindSponsorshipsMissingReceipts(db *sql.DB) ([]models.Sponsorship, error) {
	rows, err := db.Query(`
		SELECT id, donor_id, sponsor_name, sponsor_email, child_name, amount, monthly_amount, status, stripe_payment_intent_id, receipt_url, created_at
		FROM sponsorships
		WHERE stripe_payment_intent_id IS NOT NULL
		  AND receipt_url IS NULL
		  AND status IN (?, ?)
		ORDER BY created_at DESC
	`, models.StatusCompleted, models.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSponsorships(rows)
}

func SetSponsorshipReceiptURL(db *sql.DB, id uuid.UUID, receiptURL string) (bool, error) {
	res, err := db.Exec(`
		UPDATE sponsorships SET receipt_url = ? WHERE id = ? AND receipt_url IS NULL
	`, receiptURL, id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func scanSponsorships(rows *sql.Rows) ([]models.Sponsorship, error) {
	var sponsorships []models.Sponsorship
	for rows.Next() {
		var s models.Sponsorship
		var donorID, email, intentID, receiptURL sql.NullString

		if err := rows.Scan(&s.ID, &donorID, &s.SponsorName, &email, &s.ChildName, &s.Amount, &s.MonthlyAmount,
			&s.Status, &intentID, &receiptURL, &s.CreatedAt); err != nil {
			return nil, err
		}

		if donorID.Valid {
			did, err := uuid.Parse(donorID.String)
			if err == nil {
				s.DonorID = &did
			}
		}
		s.SponsorEmail = email.String
		s.StripePaymentIntentID = intentID.String
		s.ReceiptURL = receiptURL.String

		sponsorships = append(sponsorships, s)
	}

	return sponsorships, rows.Err()
}
