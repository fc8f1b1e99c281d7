// ABOUTME: Fundraising event CLI commands
// ABOUTME: Records event donations and lists events, creating events on the fly by name
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/sadaqahworks/donorledger/db"
	"github.com/sadaqahworks/donorledger/models"
)

// AddEventDonationCommand records a donation tied to a fundraising event.
// The event is created if it does not exist yet.
func AddEventDonationCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-event-donation", flag.ExitOnError)
	event := fs.String("event", "", "Event name (required)")
	name := fs.String("name", "", "Donor name as given at checkout (required)")
	email := fs.String("email", "", "Contact email")
	amount := fs.Int64("amount", 0, "Amount in whole currency units (required)")
	status := fs.String("status", models.StatusPending, "Donation status")
	paymentIntent := fs.String("payment-intent", "", "Stripe payment intent ID")
	_ = fs.Parse(args)

	if *event == "" {
		return fmt.Errorf("--event is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *amount <= 0 {
		return fmt.Errorf("--amount must be a positive whole number")
	}

	existingEvent, err := db.FindEventByName(database, *event)
	if err != nil {
		return fmt.Errorf("failed to lookup event: %w", err)
	}
	if existingEvent == nil {
		existingEvent = &models.Event{Name: *event}
		if err := db.CreateEvent(database, existingEvent); err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
	}

	donation := &models.EventDonation{
		EventID:               existingEvent.ID,
		DonorName:             *name,
		Email:                 *email,
		Amount:                *amount,
		Status:                *status,
		StripePaymentIntentID: *paymentIntent,
	}

	if *email != "" {
		donor, err := db.FindDonorByEmail(database, *email)
		if err != nil {
			return fmt.Errorf("failed to look up donor: %w", err)
		}
		if donor != nil {
			donation.DonorID = &donor.ID
		}
	}

	if err := db.CreateEventDonation(database, donation); err != nil {
		return fmt.Errorf("failed to record event donation: %w", err)
	}

	fmt.Printf("✓ Event donation recorded: %s gave %d at %s (ID: %s)\n",
		donation.DonorName, donation.Amount, existingEvent.Name, donation.ID)
	fmt.Printf("  Receipt number: %s\n", donation.ReceiptNumber)
	if donation.DonorID != nil {
		fmt.Printf("  Linked to donor: %s\n", donation.DonorID)
	}

	return nil
}

// ListEventDonationsCommand lists event donations, optionally for one event.
func ListEventDonationsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-event-donations", flag.ExitOnError)
	event := fs.String("event", "", "Filter by event name")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	var eventIDPtr *uuid.UUID
	if *event != "" {
		existingEvent, err := db.FindEventByName(database, *event)
		if err != nil {
			return fmt.Errorf("failed to lookup event: %w", err)
		}
		if existingEvent == nil {
			fmt.Printf("No event named %q\n", *event)
			return nil
		}
		eventIDPtr = &existingEvent.ID
	}

	donations, err := db.ListEventDonations(database, eventIDPtr, *limit)
	if err != nil {
		return fmt.Errorf("failed to list event donations: %w", err)
	}

	if len(donations) == 0 {
		fmt.Println("No event donations found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tAMOUNT\tSTATUS\tRECEIPT#\tLINKED\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t------\t------\t--------\t------\t--")

	for _, d := range donations {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			d.DonorName, dash(d.Email), d.Amount, d.Status, d.ReceiptNumber, yesNo(d.DonorID != nil), d.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d event donation(s)\n", len(donations))
	return nil
}

// ListEventsCommand lists fundraising events.
func ListEventsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-events", flag.ExitOnError)
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	events, err := db.ListEvents(database, *limit)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCREATED\tID")
	_, _ = fmt.Fprintln(w, "----\t-------\t--")

	for _, e := range events {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.CreatedAt.Format("2006-01-02"), e.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d event(s)\n", len(events))
	return nil
}
