package reconcile

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func createDonor(t *testing.T, database *sql.DB, name, email string) *models.Donor {
	t.Helper()
	donor := &models.Donor{Name: name, Email: email}
	require.NoError(t, db.CreateDonor(database, donor))
	return donor
}

func TestLinkAliasScenario(t *testing.T) {
	database := setupTestDB(t)
	donor := createDonor(t, database, "Donor One", "a@x.com")

	// Three unlinked sponsorships: two under the alias, one under another email
	for _, email := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		require.NoError(t, db.CreateSponsorship(database, &models.Sponsorship{
			SponsorName: "S", SponsorEmail: email, ChildName: "C", Amount: 10, MonthlyAmount: 10,
		}))
	}

	report, err := Link(database, LinkRequest{
		DonorEmails: []string{"a@x.com"},
		Aliases:     []string{"a@x.com"},
		Mode:        models.MatchExact,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Linked)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, donor.ID, report.Donor.ID)

	// The b@x.com row stays unlinked
	remaining, err := db.FindUnlinkedSponsorships(database, []string{"b@x.com"}, models.MatchExact)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestLinkIsIdempotent(t *testing.T) {
	database := setupTestDB(t)
	createDonor(t, database, "Donor One", "a@x.com")

	require.NoError(t, db.CreateDonation(database, &models.Donation{
		DonorName: "D", Email: "a@x.com", Amount: 100,
	}))
	require.NoError(t, db.CreateEventDonation(database, &models.EventDonation{
		EventID: mustCreateEvent(t, database).ID, DonorName: "D", Email: "a@x.com", Amount: 50,
	}))

	req := LinkRequest{DonorEmails: []string{"a@x.com"}}

	first, err := Link(database, req)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Linked)

	second, err := Link(database, req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Linked, "second run must update zero rows")
	assert.Empty(t, second.Records, "linked rows are excluded by the selection predicate")
}

func TestLinkNeverRelinksToDifferentDonor(t *testing.T) {
	database := setupTestDB(t)
	first := createDonor(t, database, "First", "a@x.com")
	createDonor(t, database, "Second", "b@y.com")

	require.NoError(t, db.CreateDonation(database, &models.Donation{
		DonorName: "D", Email: "shared@x.com", Amount: 100,
	}))

	_, err := Link(database, LinkRequest{
		DonorEmails: []string{"a@x.com"},
		Aliases:     []string{"shared@x.com"},
	})
	require.NoError(t, err)

	// Same alias claimed for a different donor: monotonic, no relink
	report, err := Link(database, LinkRequest{
		DonorEmails: []string{"b@y.com"},
		Aliases:     []string{"shared@x.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Linked)

	donations, err := db.ListDonations(database, "", 10)
	require.NoError(t, err)
	require.NotNil(t, donations[0].DonorID)
	assert.Equal(t, first.ID, *donations[0].DonorID)
}

func TestLinkSubstringMode(t *testing.T) {
	database := setupTestDB(t)
	createDonor(t, database, "Ibrahim", "ibrahim@x.com")

	for _, email := range []string{"ibrahim.personal@mail.example", "someone@else.example"} {
		require.NoError(t, db.CreateDonation(database, &models.Donation{
			DonorName: "D", Email: email, Amount: 10,
		}))
	}

	report, err := Link(database, LinkRequest{
		DonorEmails: []string{"ibrahim@x.com"},
		Aliases:     []string{"ibrahim"},
		Mode:        models.MatchSubstring,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, "ibrahim.personal@mail.example", report.Records[0].Email)
}

func TestLinkDonorNotFound(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, db.CreateDonation(database, &models.Donation{
		DonorName: "D", Email: "a@x.com", Amount: 100,
	}))

	_, err := Link(database, LinkRequest{DonorEmails: []string{"missing@x.com"}})
	require.ErrorIs(t, err, ErrDonorNotFound)

	// No writes happened
	unlinked, err := db.FindUnlinkedDonations(database, []string{"a@x.com"}, models.MatchExact)
	require.NoError(t, err)
	assert.Len(t, unlinked, 1)
}

func TestLinkDefaultsAliasesToDonorEmails(t *testing.T) {
	database := setupTestDB(t)
	createDonor(t, database, "Donor", "a@x.com")

	require.NoError(t, db.CreateDonation(database, &models.Donation{
		DonorName: "D", Email: "a@x.com", Amount: 100,
	}))

	report, err := Link(database, LinkRequest{DonorEmails: []string{"a@x.com"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Linked)
}

func mustCreateEvent(t *testing.T, database *sql.DB) *models.Event {
	t.Helper()
	event := &models.Event{Name: "Gala"}
	require.NoError(t, db.CreateEvent(database, event))
	return event
}
