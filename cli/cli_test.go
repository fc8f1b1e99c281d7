package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sadaqahworks/donorledger/db"
)

func setupTestCLI(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestAddAndListDonors(t *testing.T) {
	database := setupTestCLI(t)

	err := AddDonorCommand(database, []string{"--name", "Sara Khan", "--email", "sara@example.com"})
	if err != nil {
		t.Fatalf("AddDonorCommand failed: %v", err)
	}

	// Duplicate email is rejected
	err = AddDonorCommand(database, []string{"--name", "Sara Again", "--email", "sara@example.com"})
	if err == nil {
		t.Error("Expected error for duplicate donor email")
	}

	if err := ListDonorsCommand(database, []string{}); err != nil {
		t.Errorf("ListDonorsCommand failed: %v", err)
	}
}

func TestAddDonorValidation(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddDonorCommand(database, []string{"--email", "x@y.com"}); err == nil {
		t.Error("Expected error for missing --name")
	}
	if err := AddDonorCommand(database, []string{"--name", "X"}); err == nil {
		t.Error("Expected error for missing --email")
	}
}

func TestAddDonationLinksKnownDonor(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddDonorCommand(database, []string{"--name", "Sara", "--email", "sara@example.com"}); err != nil {
		t.Fatalf("AddDonorCommand failed: %v", err)
	}

	err := AddDonationCommand(database, []string{"--name", "Sara", "--email", "sara@example.com", "--amount", "100"})
	if err != nil {
		t.Fatalf("AddDonationCommand failed: %v", err)
	}

	donations, err := db.ListDonations(database, "", 10)
	if err != nil {
		t.Fatalf("ListDonations failed: %v", err)
	}
	if len(donations) != 1 || donations[0].DonorID == nil {
		t.Errorf("Expected donation linked at intake, got %+v", donations)
	}
}

func TestAddDonationValidation(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddDonationCommand(database, []string{"--name", "X"}); err == nil {
		t.Error("Expected error for missing --amount")
	}
	if err := AddDonationCommand(database, []string{"--name", "X", "--amount", "-5"}); err == nil {
		t.Error("Expected error for negative amount")
	}
}

func TestAddSponsorshipAndList(t *testing.T) {
	database := setupTestCLI(t)

	err := AddSponsorshipCommand(database, []string{
		"--sponsor", "Sara", "--email", "sara@example.com", "--child", "Bilal",
		"--amount", "5000", "--monthly", "5000", "--status", "active",
	})
	if err != nil {
		t.Fatalf("AddSponsorshipCommand failed: %v", err)
	}

	if err := ListSponsorshipsCommand(database, []string{"--status", "active"}); err != nil {
		t.Errorf("ListSponsorshipsCommand failed: %v", err)
	}
}

func TestAddEventDonationCreatesEvent(t *testing.T) {
	database := setupTestCLI(t)

	err := AddEventDonationCommand(database, []string{
		"--event", "Iftar Drive", "--name", "Ali", "--amount", "75",
	})
	if err != nil {
		t.Fatalf("AddEventDonationCommand failed: %v", err)
	}

	event, err := db.FindEventByName(database, "Iftar Drive")
	if err != nil {
		t.Fatalf("FindEventByName failed: %v", err)
	}
	if event == nil {
		t.Fatal("Expected event to be created on the fly")
	}

	// Second donation reuses the event
	err = AddEventDonationCommand(database, []string{
		"--event", "Iftar Drive", "--name", "Sara", "--amount", "25",
	})
	if err != nil {
		t.Fatalf("AddEventDonationCommand failed: %v", err)
	}

	donations, err := db.ListEventDonations(database, &event.ID, 10)
	if err != nil {
		t.Fatalf("ListEventDonations failed: %v", err)
	}
	if len(donations) != 2 {
		t.Errorf("Expected 2 donations on the event, got %d", len(donations))
	}

	if err := ListEventsCommand(database, []string{}); err != nil {
		t.Errorf("ListEventsCommand failed: %v", err)
	}
}

func TestLinkCommand(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddDonorCommand(database, []string{"--name", "Sara", "--email", "a@x.com"}); err != nil {
		t.Fatalf("AddDonorCommand failed: %v", err)
	}

	// Guest-checkout rows under an alias
	for _, args := range [][]string{
		{"--name", "Sara", "--email", "sara.alias@x.com", "--amount", "100"},
		{"--name", "Sara", "--email", "b@x.com", "--amount", "200"},
	} {
		if err := AddDonationCommand(database, args); err != nil {
			t.Fatalf("AddDonationCommand failed: %v", err)
		}
	}

	err := LinkCommand(database, []string{"--donor", "a@x.com", "sara.alias@x.com"})
	if err != nil {
		t.Fatalf("LinkCommand failed: %v", err)
	}

	if err := LinkCommand(database, []string{"--donor", "missing@x.com", "a@x.com"}); err == nil {
		t.Error("Expected error for unknown donor")
	}

	if err := LinkCommand(database, []string{"--donor", "a@x.com", "--mode", "bogus"}); err == nil {
		t.Error("Expected error for invalid mode")
	}
}

func TestSummaryCommand(t *testing.T) {
	database := setupTestCLI(t)

	if err := AddDonorCommand(database, []string{"--name", "Sara", "--email", "sara@example.com"}); err != nil {
		t.Fatalf("AddDonorCommand failed: %v", err)
	}

	if err := SummaryCommand(database, []string{"sara@example.com"}); err != nil {
		t.Errorf("SummaryCommand failed: %v", err)
	}

	if err := SummaryCommand(database, []string{}); err == nil {
		t.Error("Expected error for missing email argument")
	}
}

func TestBackfillReceiptsCommandRequiresKey(t *testing.T) {
	database := setupTestCLI(t)

	t.Setenv("STRIPE_SECRET_KEY", "")

	if err := BackfillReceiptsCommand(database, []string{}); err == nil {
		t.Error("Expected error when STRIPE_SECRET_KEY is unset")
	}

	if err := BackfillReceiptsCommand(database, []string{"--kind", "bogus"}); err == nil {
		t.Error("Expected error for invalid kind")
	}
}
