// ABOUTME: Fundraising event database operations
// ABOUTME: Handles event creation and name-based lookup
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/models"
)

func CreateEvent(db *sql.DB, event *models.Event) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO events (id, name, notes, created_at)
		VALUES (?, ?, ?, ?)
	`, event.ID.String(), event.Name, event.Notes, event.CreatedAt)

	return err
}

// FindEventByName returns the event with the given name, or nil if none.
func FindEventByName(db *sql.DB, name string) (*models.Event, error) {
	event := &models.Event{}

	err := db.QueryRow(`
		SELECT id, name, notes, created_at
		FROM events WHERE name = ?
	`, name).Scan(&event.ID, &event.Name, &event.Notes, &event.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return event, nil
}

func GetEvent(db *sql.DB, id uuid.UUID) (*models.Event, error) {
	event := &models.Event{}

	err := db.QueryRow(`
		SELECT id, name, notes, created_at
		FROM events WHERE id = ?
	`, id.String()).Scan(&event.ID, &event.Name, &event.Notes, &event.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return event, nil
}

func ListEvents(db *sql.DB, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, name, notes, created_at
		FROM events
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
