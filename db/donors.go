// ABOUTME: Donor database operations
// ABOUTME: Handles donor CRUD and email-based identity resolution
package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/models"
)

func CreateDonor(db *sql.DB, donor *models.Donor) error {
	donor.ID = uuid.New()
	donor.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO donors (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
	`, donor.ID.String(), donor.Name, donor.Email, donor.CreatedAt)

	return err
}

func GetDonor(db *sql.DB, id uuid.UUID) (*models.Donor, error) {
	donor := &models.Donor{}

	err := db.QueryRow(`
		SELECT id, name, email, created_at
		FROM donors WHERE id = ?
	`, id.String()).Scan(&donor.ID, &donor.Name, &donor.Email, &donor.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return donor, nil
}

// FindDonorByEmail resolves a donor by exact email match. Returns nil
// (no error) when no donor carries that email.
func FindDonorByEmail(db *sql.DB, email string) (*models.Donor, error) {
	donor := &models.Donor{}

	err := db.QueryRow(`
		SELECT id, name, email, created_at
		FROM donors WHERE email = ?
	`, email).Scan(&donor.ID, &donor.Name, &donor.Email, &donor.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return donor, nil
}

func FindDonors(db *sql.DB, query string, limit int) ([]models.Donor, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if query != "" {
		searchPattern := "%" + strings.ToLower(query) + "%"
		rows, err = db.Query(`
			SELECT id, name, email, created_at
			FROM donors
			WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?
			ORDER BY created_at DESC
			LIMIT ?
		`, searchPattern, searchPattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, name, email, created_at
			FROM donors
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []models.Donor
	for rows.Next() {
		var d models.Donor
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.CreatedAt); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}

	return donors, rows.Err()
}
