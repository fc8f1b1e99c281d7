// ABOUTME: One-time donation database operations
// ABOUTME: Handles donation recording, listing, and reconciliation queries
package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/models"
)

func CreateDonation(db *sql.DB, donation *models.Donation) error {
	donation.ID = uuid.New()
	donation.CreatedAt = time.Now()

	if donation.Status == "" {
		donation.Status = models.StatusPending
	}

	var donorID *string
	if donation.DonorID != nil {
		s := donation.DonorID.String()
		donorID = &s
	}

	_, err := db.Exec(`
		INSERT INTO donations (id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, donation.ID.String(), donorID, donation.DonorName, donation.Email, donation.Amount,
		donation.Status, nullIfEmpty(donation.StripePaymentIntentID), nullIfEmpty(donation.ReceiptURL), donation.CreatedAt)

	return err
}

func ListDonations(db *sql.DB, status string, limit int) ([]models.Donation, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.Query(`
			SELECT id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_url, created_at
			FROM donations
			WHERE status = ?
			ORDER BY created_at DESC
			LIMIT ?
		`, status, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_url, created_at
			FROM donations
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDonations(rows)
}

// FindUnlinkedDonations returns donations whose donor reference is still
// null and whose email matches the alias set (exact) or pattern (substring).
func FindUnlinkedDonations(db *sql.DB, aliases []string, mode models.MatchMode) ([]models.Donation, error) {
	where, args := emailMatchClause("email", aliases, mode)
	if where == "" {
		return nil, nil
	}

	rows, err := db.Query(`
		SELECT id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_url, created_at
		FROM donations
		WHERE donor_id IS NULL AND `+where+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDonations(rows)
}

// ClaimDonationForDonor links a donation to a donor only if the row is
// still unlinked. Returns true if this call performed the link.
func ClaimDonationForDonor(db *sql.DB, id, donorID uuid.UUID) (bool, error) {
	res, err := db.Exec(`
		UPDATE donations SET donor_id = ? WHERE id = ? AND donor_id IS NULL
	`, donorID.String(), id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// FindDonationsMissingReceipts returns completed donations that carry a
// Stripe payment intent but no receipt URL yet.
func FindDonationsMissingReceipts(db *sql.DB) ([]models.Donation, error) {
	rows, err := db.Query(`
		SELECT id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_url, created_at
		FROM donations
		WHERE stripe_payment_intent_id IS NOT NULL
		  AND receipt_url IS NULL
		  AND status = ?
		ORDER BY created_at DESC
	`, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDonations(rows)
}

// SetDonationReceiptURL writes the receipt URL only if still unset.
// Returns true if this call performed the write.
func SetDonationReceiptURL(db *sql.DB, id uuid.UUID, receiptURL string) (bool, error) {
	res, err := db.Exec(`
		UPDATE donations SET receipt_url = ? WHERE id = ? AND receipt_url IS NULL
	`, receiptURL, id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func scanDonations(rows *sql.Rows) ([]models.Donation, error) {
	var donations []models.Donation
	for rows.Next() {
		var d models.Donation
		var donorID, email, intentID, receiptURL sql.NullString

		if err := rows.Scan(&d.ID, &donorID, &d.DonorName, &email, &d.Amount, &d.Status, &intentID, &receiptURL, &d.CreatedAt); err != nil {
			return nil, err
		}

		if donorID.Valid {
			did, err := uuid.Parse(donorID.String)
			if err == nil {
				d.DonorID = &did
			}
		}
		d.Email = email.String
		d.StripePaymentIntentID = intentID.String
		d.ReceiptURL = receiptURL.String

		donations = append(donations, d)
	}

	return donations, rows.Err()
}

// emailMatchClause builds the WHERE fragment for alias matching. Exact mode
// expands to an IN list over the alias set; substring mode takes the first
// alias as a LIKE pattern on the stored email.
func emailMatchClause(column string, aliases []string, mode models.MatchMode) (string, []interface{}) {
	if len(aliases) == 0 {
		return "", nil
	}

	if mode == models.MatchSubstring {
		return column + " LIKE ?", []interface{}{"%" + aliases[0] + "%"}
	}

	placeholders := strings.Repeat("?, ", len(aliases))
	placeholders = placeholders[:len(placeholders)-2]
	args := make([]interface{}, len(aliases))
	for i, a := range aliases {
		args[i] = a
	}
	return column + " IN (" + placeholders + ")", args
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
