// ABOUTME: Event donation database operations
// ABOUTME: Handles event-specific donation recording, listing, and reconciliation queries
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/models"
)

func CreateEventDonation(db *sql.DB, donation *models.EventDonation) error {
	donation.ID = uuid.New()
	donation.CreatedAt = time.Now()

	if donation.Status == "" {
		donation.Status = models.StatusPending
	}
	if donation.ReceiptNumber == "" {
		donation.ReceiptNumber = models.GenerateReceiptNumber()
	}

	var donorID *string
	if donation.DonorID != nil {
		s := donation.DonorID.String()
		donorID = &s
	}

	_, err := db.Exec(`
		INSERT INTO event_donations (id, event_id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_number, receipt_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, donation.ID.String(), donation.EventID.String(), donorID, donation.DonorName, donation.Email,
		donation.Amount, donation.Status, nullIfEmpty(donation.StripePaymentIntentID),
		donation.ReceiptNumber, nullIfEmpty(donation.ReceiptURL), donation.CreatedAt)

	return err
}

func ListEventDonations(db *sql.DB, eventID *uuid.UUID, limit int) ([]models.EventDonation, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if eventID != nil {
		rows, err = db.Query(`
			SELECT id, event_id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_number, receipt_url, created_at
			FROM event_donations
			WHERE event_id = ?
			ORDER BY created_at DESC
			LIMIT ?
		`, eventID.String(), limit)
	} else {
		rows, err = db.Query(`
			SELECT id, event_id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_number, receipt_url, created_at
			FROM event_donations
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEventDonations(rows)
}

func FindUnlinkedEventDonations(db *sql.DB, aliases []string, mode models.MatchMode) ([]models.EventDonation, error) {
	where, args := emailMatchClause("email", aliases, mode)
	if where == "" {
		return nil, nil
	}

	rows, err := db.Query(`
		SELECT id, event_id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_number, receipt_url, created_at
		FROM event_donations
		WHERE donor_id IS NULL AND `+where+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEventDonations(rows)
}

func ClaimEventDonationForDonor(db *sql.DB, id, donorID uuid.UUID) (bool, error) {
	res, err := db.Exec(`
		UPDATE event_donations SET donor_id = ? WHERE id = ? AND donor_id IS NULL
	`, donorID.String(), id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func FindEventDonationsMissingReceipts(db *sql.DB) ([]models.EventDonation, error) {
	rows, err := db.Query(`
		SELECT id, event_id, donor_id, donor_name, email, amount, status, stripe_payment_intent_id, receipt_number, receipt_url, created_at
		FROM event_donations
		WHERE stripe_payment_intent_id IS NOT NULL
		  AND receipt_url IS NULL
		  AND status = ?
		ORDER BY created_at DESC
	`, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEventDonations(rows)
}

func SetEventDonationReceiptURL(db *sql.DB, id uuid.UUID, receiptURL string) (bool, error) {
	res, err := db.Exec(`
		UPDATE event_donations SET receipt_url = ? WHERE id = ? AND receipt_url IS NULL
	`, receiptURL, id.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func scanEventDonations(rows *sql.Rows) ([]models.EventDonation, error) {
	var donations []models.EventDonation
	for rows.Next() {
		var d models.EventDonation
		var donorID, email, intentID, receiptURL sql.NullString

		if err := rows.Scan(&d.ID, &d.EventID, &donorID, &d.DonorName, &email, &d.Amount, &d.Status,
			&intentID, &d.ReceiptNumber, &receiptURL, &d.CreatedAt); err != nil {
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
