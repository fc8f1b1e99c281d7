// ABOUTME: Entry point for the donorledger CLI
// ABOUTME: Routes to ledger, reconcile, report, and newsletter commands
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sadaqahworks/donorledger/cli"
	"github.com/sadaqahworks/donorledger/config"
	"github.com/sadaqahworks/donorledger/db"
)

const version = "0.2.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/donorledger/ledger.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("donorledger version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "ledger":
		database := openLedger(*dbPath)
		defer database.Close()

		if *initOnly {
			log.Println("Database initialized successfully")
			os.Exit(0)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: ledger requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "add-donor":
			fatalOnError(cli.AddDonorCommand(database, subArgs))
		case "list-donors":
			fatalOnError(cli.ListDonorsCommand(database, subArgs))
		case "add-donation":
			fatalOnError(cli.AddDonationCommand(database, subArgs))
		case "list-donations":
			fatalOnError(cli.ListDonationsCommand(database, subArgs))
		case "add-sponsorship":
			fatalOnError(cli.AddSponsorshipCommand(database, subArgs))
		case "list-sponsorships":
			fatalOnError(cli.ListSponsorshipsCommand(database, subArgs))
		case "add-event-donation":
			fatalOnError(cli.AddEventDonationCommand(database, subArgs))
		case "list-event-donations":
			fatalOnError(cli.ListEventDonationsCommand(database, subArgs))
		case "list-events":
			fatalOnError(cli.ListEventsCommand(database, subArgs))
		default:
			fmt.Printf("Unknown ledger command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "reconcile":
		database := openLedger(*dbPath)
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: reconcile requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		sub := commandArgs[0]
		subArgs := commandArgs[1:]

		switch sub {
		case "link":
			fatalOnError(cli.LinkCommand(database, subArgs))
		case "backfill-receipts":
			fatalOnError(cli.BackfillReceiptsCommand(database, subArgs))
		default:
			fmt.Printf("Unknown reconcile command: %s\n\n", sub)
			printUsage()
			os.Exit(1)
		}

	case "report":
		database := openLedger(*dbPath)
		defer database.Close()

		if len(commandArgs) == 0 || commandArgs[0] != "summary" {
			fmt.Println("Error: report requires the summary subcommand")
			printUsage()
			os.Exit(1)
		}
		fatalOnError(cli.SummaryCommand(database, commandArgs[1:]))

	case "newsletter":
		if len(commandArgs) == 0 || commandArgs[0] != "subscribe" {
			fmt.Println("Error: newsletter requires the subscribe subcommand")
			printUsage()
			os.Exit(1)
		}
		fatalOnError(cli.SubscribeCommand(commandArgs[1:]))

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func openLedger(dbPath string) *sql.DB {
	if dbPath == "" {
		dbPath = config.Load().DBPath
	}

	database, err := db.OpenDatabase(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	log.Printf("Ledger database: %s", dbPath)
	return database
}

func fatalOnError(err error) {
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Printf(`donorledger v%s - Donation ledger and reconciliation toolkit

USAGE:
  donorledger [global flags] <command> <subcommand> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/donorledger/ledger.db)
  --init                 Initialize database and exit (use with 'ledger')

LEDGER COMMANDS:
  donorledger ledger add-donor          Add a donor identity
    --name <name>                         Donor name (required)
    --email <email>                       Email address (required)
    --subscribe                           Also subscribe to the newsletter

  donorledger ledger list-donors        List donors
    --query <text>                        Search by name or email
    --limit <n>                           Max results (default: 50)

  donorledger ledger add-donation       Record a one-time donation
    --name <name>                         Donor name at checkout (required)
    --email <email>                       Contact email
    --amount <units>                      Amount in whole currency units (required)
    --status <status>                     Status (default: pending)
    --payment-intent <pi_...>             Stripe payment intent ID

  donorledger ledger list-donations     List donations
    --status <status>                     Filter by status
    --limit <n>                           Max results (default: 50)

  donorledger ledger add-sponsorship    Record a child sponsorship
    --sponsor <name>                      Sponsor name (required)
    --email <email>                       Sponsor email
    --child <name>                        Sponsored child (required)
    --amount <units>                      Initial payment
    --monthly <units>                     Monthly commitment (required)
    --status <status>                     Status (default: pending)
    --payment-intent <pi_...>             Stripe payment intent ID

  donorledger ledger list-sponsorships  List sponsorships
    --status <status>                     Filter by status
    --limit <n>                           Max results (default: 50)

  donorledger ledger add-event-donation Record an event donation
    --event <name>                        Event name, created if new (required)
    --name <name>                         Donor name at checkout (required)
    --email <email>                       Contact email
    --amount <units>                      Amount (required)
    --status <status>                     Status (default: pending)
    --payment-intent <pi_...>             Stripe payment intent ID

  donorledger ledger list-event-donations  List event donations
    --event <name>                        Filter by event name
    --limit <n>                           Max results (default: 50)

  donorledger ledger list-events        List fundraising events

RECONCILE COMMANDS:
  donorledger reconcile link            Link unlinked records to a donor
    --donor <email>                       Email resolving the target donor (required)
    --mode exact|substring                Alias matching mode (default: exact)
    [alias ...]                           Alias emails, or one pattern in substring mode

  donorledger reconcile backfill-receipts  Fetch missing Stripe receipt URLs
    --kind donations|sponsorships|events|all  Ledger to process (default: all)

REPORT COMMANDS:
  donorledger report summary <email>    Giving summary for a donor

NEWSLETTER COMMANDS:
  donorledger newsletter subscribe      Subscribe an address to the newsletter
    --email <email>                       Subscriber email (required)
    --name <name>                         Subscriber name

EXAMPLES:
  # Record a guest-checkout sponsorship
  donorledger ledger add-sponsorship --sponsor "Sara Khan" --email "sara@example.com" \
      --child "Bilal" --amount 5000 --monthly 5000 --status active --payment-intent pi_abc123

  # Link records entered under an alias to a known donor
  donorledger reconcile link --donor "sara@example.com" sara@example.com s.khan@work.example

  # Pull missing Stripe receipts
  donorledger reconcile backfill-receipts

  # Review a donor's giving
  donorledger report summary sara@example.com

`, version)
}
