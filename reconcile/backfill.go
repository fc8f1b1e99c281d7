// ABOUTME: Receipt backfill agent for settled contributions
// ABOUTME: Fetches Stripe receipt URLs and writes them back, one record at a time
package reconcile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
)

// ReceiptSource retrieves the receipt URL for an upstream payment intent.
// An empty URL with a nil error means the payment has no settled charge
// yet: try again on a later run.
type ReceiptSource interface {
	ReceiptURL(ctx context.Context, paymentIntentID string) (string, error)
}

// BackfillOutcome classifies what happened to one candidate record.
type BackfillOutcome string

const (
	OutcomeUpdated BackfillOutcome = "updated"
	OutcomePending BackfillOutcome = "pending" // receipt not issued upstream yet
	OutcomeFailed  BackfillOutcome = "failed"  // upstream or persistence failure
	OutcomeRaced   BackfillOutcome = "raced"   // concurrent run wrote the receipt first
)

// BackfillRecord is one candidate row's result, kept for operator review.
type BackfillRecord struct {
	Kind            models.ContributionKind
	ID              uuid.UUID
	Name            string
	PaymentIntentID string
	ReceiptURL      string
	Outcome         BackfillOutcome
	Err             error
}

// BackfillReport summarizes a backfill run.
type BackfillReport struct {
	Records []BackfillRecord
	Updated int
	Pending int
	Failed  int
	Raced   int
}

// Backfill finds contribution records that are settled but have no stored
// receipt URL, fetches each receipt from the upstream provider, and
// persists it. Rows that already carry a receipt are excluded by the
// selection predicate, so they never cost an upstream call. One record's
// failure never aborts the rest of the batch; only a failure enumerating
// candidates does.
func Backfill(ctx context.Context, database *sql.DB, source ReceiptSource, kinds ...models.ContributionKind) (*BackfillReport, error) {
	if len(kinds) == 0 {
		kinds = []models.ContributionKind{models.KindDonation, models.KindSponsorship, models.KindEventDonation}
	}

	report := &BackfillReport{}

	for _, kind := range kinds {
		switch kind {
		case models.KindDonation:
			donations, err := db.FindDonationsMissingReceipts(database)
			if err != nil {
				return nil, fmt.Errorf("failed to query donations: %w", err)
			}
			for _, d := range donations {
				rec := backfillOne(ctx, source, kind, d.ID, d.DonorName, d.StripePaymentIntentID,
					func(url string) (bool, error) { return db.SetDonationReceiptURL(database, d.ID, url) })
				report.add(rec)
			}

		case models.KindSponsorship:
			sponsorships, err := db.FindSponsorshipsMissingReceipts(database)
			if err != nil {
				return nil, fmt.Errorf("failed to query sponsorships: %w", err)
			}
			for _, s := range sponsorships {
				rec := backfillOne(ctx, source, kind, s.ID, s.SponsorName, s.StripePaymentIntentID,
					func(url string) (bool, error) { return db.SetSponsorshipReceiptURL(database, s.ID, url) })
				report.add(rec)
			}

		case models.KindEventDonation:
			eventDonations, err := db.FindEventDonationsMissingReceipts(database)
			if err != nil {
				return nil, fmt.Errorf("failed to query event donations: %w", err)
			}
			for _, d := range eventDonations {
				rec := backfillOne(ctx, source, kind, d.ID, d.DonorName, d.StripePaymentIntentID,
					func(url string) (bool, error) { return db.SetEventDonationReceiptURL(database, d.ID, url) })
				report.add(rec)
			}

		default:
			return nil, fmt.Errorf("unknown contribution kind: %s", kind)
		}
	}

	return report, nil
}

// backfillOne runs the fetch-then-conditional-write cycle for one record.
func backfillOne(ctx context.Context, source ReceiptSource, kind models.ContributionKind,
	id uuid.UUID, name, intentID string, write func(url string) (bool, error)) BackfillRecord {

	rec := BackfillRecord{Kind: kind, ID: id, Name: name, PaymentIntentID: intentID}

	url, err := source.ReceiptURL(ctx, intentID)
	if err != nil {
		rec.Outcome = OutcomeFailed
		rec.Err = err
		return rec
	}
	if url == "" {
		rec.Outcome = OutcomePending
		return rec
	}

	written, err := write(url)
	if err != nil {
		rec.Outcome = OutcomeFailed
		rec.Err = fmt.Errorf("failed to store receipt: %w", err)
		return rec
	}
	if !written {
		rec.Outcome = OutcomeRaced
		return rec
	}

	rec.Outcome = OutcomeUpdated
	rec.ReceiptURL = url
	return rec
}

func (r *BackfillReport) add(rec BackfillRecord) {
	r.Records = append(r.Records, rec)
	switch rec.Outcome {
	case OutcomeUpdated:
		r.Updated++
	case OutcomePending:
		r.Pending++
	case OutcomeFailed:
		r.Failed++
	case OutcomeRaced:
		r.Raced++
	}
}
