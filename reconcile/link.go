// ABOUTME: Identity linking agent for unlinked contribution records
// ABOUTME: Associates ledger rows with a donor by alias email match, monotonically
package reconcile

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
)

// LinkRequest names a target donor by candidate emails and describes which
// ledger rows should be linked to them. With MatchExact, Aliases is the
// allow-list of emails; with MatchSubstring, the first alias is treated as
// a pattern over the stored contact email.
type LinkRequest struct {
	DonorEmails []string
	Aliases     []string
	Mode        models.MatchMode
}

// LinkedRecord is one row the linker touched, kept for operator review.
type LinkedRecord struct {
	Kind   models.ContributionKind
	ID     uuid.UUID
	Name   string
	Email  string
	Amount int64
	Linked bool // false when another run claimed the row first
}

// LinkReport summarizes a linking run.
type LinkReport struct {
	Donor   *models.Donor
	Records []LinkedRecord
	Linked  int
	Skipped int
}

// Link finds every contribution record of every kind whose contact email
// matches the request and whose donor reference is still null, and links it
// to the target donor. Linking is monotonic: rows that already carry a
// donor reference are never touched, so re-running converges to the same
// state and a second run updates zero rows.
func Link(database *sql.DB, req LinkRequest) (*LinkReport, error) {
	donor, err := resolveDonor(database, req.DonorEmails)
	if err != nil {
		return nil, err
	}

	aliases := req.Aliases
	if len(aliases) == 0 {
		// Default to the donor's own known emails
		aliases = req.DonorEmails
	}
	if len(aliases) == 0 {
		return nil, ErrNoAliases
	}

	mode := req.Mode
	if mode == "" {
		mode = models.MatchExact
	}

	report := &LinkReport{Donor: donor}

	donations, err := db.FindUnlinkedDonations(database, aliases, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	for _, d := range donations {
		linked, err := db.ClaimDonationForDonor(database, d.ID, donor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to link donation %s: %w", d.ID, err)
		}
		report.add(LinkedRecord{
			Kind: models.KindDonation, ID: d.ID, Name: d.DonorName, Email: d.Email, Amount: d.Amount, Linked: linked,
		})
	}

	sponsorships, err := db.FindUnlinkedSponsorships(database, aliases, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsorships: %w", err)
	}
	for _, s := range sponsorships {
		linked, err := db.ClaimSponsorshipForDonor(database, s.ID, donor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to link sponsorship %s: %w", s.ID, err)
		}
		report.add(LinkedRecord{
			Kind: models.KindSponsorship, ID: s.ID, Name: s.SponsorName, Email: s.SponsorEmail, Amount: s.Amount, Linked: linked,
		})
	}

	eventDonations, err := db.FindUnlinkedEventDonations(database, aliases, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to query event donations: %w", err)
	}
	for _, d := range eventDonations {
		linked, err := db.ClaimEventDonationForDonor(database, d.ID, donor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to link event donation %s: %w", d.ID, err)
		}
		report.add(LinkedRecord{
			Kind: models.KindEventDonation, ID: d.ID, Name: d.DonorName, Email: d.Email, Amount: d.Amount, Linked: linked,
		})
	}

	return report, nil
}

func (r *LinkReport) add(rec LinkedRecord) {
	r.Records = append(r.Records, rec)
	if rec.Linked {
		r.Linked++
	} else {
		r.Skipped++
	}
}

// resolveDonor returns the first donor matching any candidate email, or
// ErrDonorNotFound if none exists.
func resolveDonor(database *sql.DB, emails []string) (*models.Donor, error) {
	for _, email := range emails {
		donor, err := db.FindDonorByEmail(database, email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up donor %s: %w", email, err)
		}
		if donor != nil {
			return donor, nil
		}
	}
	return nil, fmt.Errorf("%w: tried %v", ErrDonorNotFound, emails)
}
