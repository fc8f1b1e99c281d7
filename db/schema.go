// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS donors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_donors_email ON donors(email);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	notes TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_name ON events(name);

CREATE TABLE IF NOT EXISTS donations (
	id TEXT PRIMARY KEY,
	donor_id TEXT,
	donor_name TEXT NOT NULL,
	email TEXT,
	amount INTEGER NOT NULL CHECK(amount >= 0),
	status TEXT NOT NULL DEFAULT 'pending',
	stripe_payment_intent_id TEXT,
	receipt_url TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (donor_id) REFERENCES donors(id)
);

CREATE INDEX IF NOT EXISTS idx_donations_donor_id ON donations(donor_id);
CREATE INDEX IF NOT EXISTS idx_donations_email ON donations(email);
CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status);

CREATE TABLE IF NOT EXISTS sponsorships (
	id TEXT PRIMARY KEY,
	donor_id TEXT,
	sponsor_name TEXT NOT NULL,
	sponsor_email TEXT,
	child_name TEXT NOT NULL,
	amount INTEGER NOT NULL CHECK(amount >= 0),
	monthly_amount INTEGER NOT NULL CHECK(monthly_amount >= 0),
	status TEXT NOT NULL DEFAULT 'pending',
	stripe_payment_intent_id TEXT,
	receipt_url TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (donor_id) REFERENCES donors(id)
);

CREATE INDEX IF NOT EXISTS idx_sponsorships_donor_id ON sponsorships(donor_id);
CREATE INDEX IF NOT EXISTS idx_sponsorships_email ON sponsorships(sponsor_email);
CREATE INDEX IF NOT EXISTS idx_sponsorships_status ON sponsorships(status);

CREATE TABLE IF NOT EXISTS event_donations (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL,
	donor_id TEXT,
	donor_name TEXT NOT NULL,
	email TEXT,
	amount INTEGER NOT NULL CHECK(amount >= 0),
	status TEXT NOT NULL DEFAULT 'pending',
	stripe_payment_intent_id TEXT,
	receipt_number TEXT NOT NULL,
	receipt_url TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (event_id) REFERENCES events(id),
	FOREIGN KEY (donor_id) REFERENCES donors(id)
);

CREATE INDEX IF NOT EXISTS idx_event_donations_event_id ON event_donations(event_id);
CREATE INDEX IF NOT EXISTS idx_event_donations_donor_id ON event_donations(donor_id);
CREATE INDEX IF NOT EXISTS idx_event_donations_email ON event_donations(email);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
