// ABOUTME: Data models for donation ledger entities
// ABOUTME: Defines Donor, Donation, Sponsorship, EventDonation, and Event structs
package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type Donor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Donation struct {
	ID                    uuid.UUID  `json:"id"`
	DonorID               *uuid.UUID `json:"donor_id,omitempty"`
	DonorName             string     `json:"donor_name"`
	Email                 string     `json:"email,omitempty"`
	Amount                int64      `json:"amount"` // whole currency units
	Status                string     `json:"status"`
	StripePaymentIntentID string     `json:"stripe_payment_intent_id,omitempty"`
	ReceiptURL            string     `json:"receipt_url,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type Sponsorship struct {
	ID                    uuid.UUID  `json:"id"`
	DonorID               *uuid.UUID `json:"donor_id,omitempty"`
	SponsorName           string     `json:"sponsor_name"`
	SponsorEmail          string     `json:"sponsor_email,omitempty"`
	ChildName             string     `json:"child_name"`
	Amount                int64      `json:"amount"`         // initial payment, whole currency units
	MonthlyAmount         int64      `json:"monthly_amount"` // recurring commitment
	Status                string     `json:"status"`
	StripePaymentIntentID string     `json:"stripe_payment_intent_id,omitempty"`
	ReceiptURL            string     `json:"receipt_url,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type EventDonation struct {
	ID                    uuid.UUID  `json:"id"`
	EventID               uuid.UUID  `json:"event_id"`
	DonorID               *uuid.UUID `json:"donor_id,omitempty"`
	DonorName             string     `json:"donor_name"`
	Email                 string     `json:"email,omitempty"`
	Amount                int64      `json:"amount"`
	Status                string     `json:"status"`
	StripePaymentIntentID string     `json:"stripe_payment_intent_id,omitempty"`
	ReceiptNumber         string     `json:"receipt_number"` // locally issued, distinct from Stripe receipt
	ReceiptURL            string     `json:"receipt_url,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type Event struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Contribution status constants.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusPaused    = "paused"
)

// MatchMode selects how alias emails are matched against ledger rows.
type MatchMode string

const (
	MatchExact     MatchMode = "exact"     // email must equal one of the aliases
	MatchSubstring MatchMode = "substring" // email must contain the pattern
)

// ContributionKind identifies which ledger table a row came from.
type ContributionKind string

const (
	KindDonation      ContributionKind = "donation"
	KindSponsorship   ContributionKind = "sponsorship"
	KindEventDonation ContributionKind = "event_donation"
)

// GenerateReceiptNumber issues a local receipt number for event donations.
// These are ledger-issued identifiers, not Stripe receipts.
func GenerateReceiptNumber() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return "EV-" + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
