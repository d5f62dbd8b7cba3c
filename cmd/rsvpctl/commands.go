package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"rsvptracker/config"
	"rsvptracker/internal/cli"
	"rsvptracker/internal/domain"
)

// app carries what the subcommands need. Fields are plain values so tests
// can supply fakes.
type app struct {
	cfg       *config.Config
	console   *cli.Console
	maint     domain.MaintenanceService
	migrate   func() error
	newReport func() (domain.ReportService, error)
}

type command struct {
	usage string
	desc  string
	run   func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"reset":        {"reset", "Set every guest back to Pending with attending_count 0", (*app).reset},
	"delete-all":   {"delete-all [--no-input]", "Delete every guest (asks for 'yes')", (*app).deleteAll},
	"drop-tables":  {"drop-tables [--no-input]", "Drop every table (asks for 'DROP ALL TABLES')", (*app).dropTables},
	"export":       {"export [--path file]", "Write all guests to a CSV file", (*app).export},
	"export-merge": {"export-merge [--path file]", "Merge the store into an existing CSV file", (*app).exportMerge},
	"load":         {"load [--path file]", "Create guests from a CSV file, skipping known phones", (*app).load},
	"report":       {"report [--mail-to addr]", "Print the RSVP summary, optionally mail it", (*app).report},
	"migrate":      {"migrate", "Apply pending schema migrations", (*app).runMigrate},
}

var commandOrder = []string{"migrate", "load", "export", "export-merge", "reset", "report", "delete-all", "drop-tables"}

func printUsage(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true).Render("rsvpctl")
	cmdStyle := r.NewStyle().Bold(true)
	descStyle := r.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintf(w, "\n  %s  guest list maintenance\n\n  Commands:\n", title) //nolint:errcheck
	for _, name := range commandOrder {
		c := commands[name]
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-28s", c.usage)), descStyle.Render(c.desc)) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	c, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	return c.run(a, ctx, args[1:])
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) reset(ctx context.Context, args []string) error {
	if err := a.flags("reset").Parse(args); err != nil {
		return err
	}
	a.console.Warning("Starting to reset all guest RSVP responses...")
	n, err := a.maint.ResetResponses(ctx)
	if err != nil {
		a.console.Error("An error occurred during reset: %v", err)
		return err
	}
	if n == 0 {
		a.console.Warning("No guests found in the database to reset.")
		return nil
	}
	a.console.Success("Successfully reset RSVP status for %d guests to 'Pending' and attending_count to 0.", n)
	return nil
}

func (a *app) deleteAll(ctx context.Context, args []string) error {
	fs := a.flags("delete-all")
	noInput := fs.Bool("no-input", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.console.Error("!! WARNING: DELETION COMMAND INITIATED !!")
	total, err := a.maint.CountGuests(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		a.console.Warning("No guests found in the database. Nothing to delete.")
		return nil
	}
	a.console.Info("Found %d guest records.", total)

	if !*noInput {
		ok, err := a.console.ConfirmYes(fmt.Sprintf("Are you sure you want to delete ALL %d guests? This cannot be undone. Type 'yes' to continue:", total))
		if err != nil {
			return err
		}
		if !ok {
			a.console.Notice("Deletion cancelled by user.")
			return nil
		}
	}

	a.console.Warning("Starting mass deletion...")
	n, err := a.maint.DeleteAllGuests(ctx, true)
	if err != nil {
		a.console.Error("An error occurred during deletion: %v", err)
		return err
	}
	if n == 0 {
		a.console.Warning("No guests were deleted.")
		return nil
	}
	a.console.Success("Successfully deleted %d guest records.", n)
	return nil
}

func (a *app) dropTables(ctx context.Context, args []string) error {
	fs := a.flags("drop-tables")
	noInput := fs.Bool("no-input", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.console.Error("!! EXTREME WARNING: YOU ARE ABOUT TO DROP ALL DATABASE TABLES !!")
	a.console.Error("This action will destroy all data AND schema definitions. It is irreversible.")
	if !*noInput {
		ok, err := a.console.ConfirmPhrase(fmt.Sprintf("Type '%s' to confirm:", cli.DropTablesPhrase), cli.DropTablesPhrase)
		if err != nil {
			return err
		}
		if !ok {
			a.console.Notice("Table deletion cancelled by user.")
			return nil
		}
	}

	a.console.Warning("Starting database table drop operation...")
	dropped, err := a.maint.DropAllTables(ctx, true)
	for _, name := range dropped {
		a.console.Info("  -> Dropped table: %s", name)
	}
	if err != nil {
		a.console.Error("A critical error occurred during table deletion: %v", err)
		return err
	}
	if len(dropped) == 0 {
		a.console.Warning("No tables found in the database. Nothing to drop.")
		return nil
	}
	a.console.Success("Successfully dropped %d tables.", len(dropped))
	a.console.Notice("Run 'rsvpctl migrate' to recreate the empty database schema.")
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := a.flags("export")
	path := fs.String("path", a.cfg.ExportPath, "target CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.console.Warning("Starting CSV export to: %s", *path)
	n, err := a.maint.ExportGuests(ctx, *path)
	if err != nil {
		a.console.Error("An error occurred during export: %v", err)
		return err
	}
	if n == 0 {
		a.console.Warning("No guests found to export.")
		return nil
	}
	a.console.Success("Successfully exported %d guests to %s", n, *path)
	return nil
}

func (a *app) exportMerge(ctx context.Context, args []string) error {
	fs := a.flags("export-merge")
	path := fs.String("path", a.cfg.ExportPath, "CSV file to merge into")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.console.Warning("Starting CSV export-merge into: %s", *path)
	stats, err := a.maint.ExportMergeGuests(ctx, *path)
	if err != nil {
		a.console.Error("An error occurred during export: %v", err)
		return err
	}
	a.console.Success("Wrote %d guests to %s (added %d, updated %d, unchanged %d, kept %d file-only).",
		stats.Total(), *path, stats.Added, stats.Updated, stats.Unchanged, stats.Preserved)
	return nil
}

func (a *app) load(ctx context.Context, args []string) error {
	fs := a.flags("load")
	path := fs.String("path", a.cfg.InitialDataPath, "source CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.console.Info("Attempting to load data from: %s", *path)
	stats, err := a.maint.LoadInitialGuests(ctx, *path)
	if err != nil {
		if errors.Is(err, domain.ErrSourceNotFound) {
			a.console.Error("Initial data file not found at: %s", *path)
		} else {
			a.console.Error("Load aborted, no guests were created: %v", err)
		}
		return err
	}
	a.console.Success("Successfully loaded %d new guests.", stats.Created)
	if stats.Skipped > 0 {
		a.console.Warning("Skipped %d guests that already existed.", stats.Skipped)
	}
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := a.flags("report")
	mailTo := fs.String("mail-to", "", "send the summary to this address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	svc, err := a.newReport()
	if err != nil {
		return fmt.Errorf("init report: %w", err)
	}

	var sum *domain.RSVPSummary
	if *mailTo != "" {
		sum, err = svc.SendSummary(ctx, *mailTo)
	} else {
		sum, err = svc.Summary(ctx)
	}
	if err != nil {
		return err
	}

	a.console.Notice("RSVP summary")
	a.console.Info("  Guests:     %d", sum.TotalGuests)
	a.console.Info("  Attending:  %d (head count %d)", sum.Attending, sum.HeadCount)
	a.console.Info("  Declined:   %d", sum.Declined)
	a.console.Info("  Pending:    %d", sum.Pending)
	a.console.Info("  Seats:      %d", sum.InvitedSeats)
	if sum.NonNumericSeat > 0 {
		a.console.Warning("  %d guests have a non-numeric maxGuests value.", sum.NonNumericSeat)
	}
	if *mailTo != "" {
		a.console.Success("Report sent to %s", *mailTo)
	}
	return nil
}

func (a *app) runMigrate(_ context.Context, args []string) error {
	if err := a.flags("migrate").Parse(args); err != nil {
		return err
	}
	if err := a.migrate(); err != nil {
		a.console.Error("Migration failed: %v", err)
		return err
	}
	a.console.Success("Database schema is up to date.")
	return nil
}
