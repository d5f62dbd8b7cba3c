// Command rsvpctl runs the maintenance operations on the guest list:
// bulk reset, bulk delete, schema drop, CSV export and load, the RSVP
// report and schema migration. None of these are reachable over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"rsvptracker/config"
	"rsvptracker/internal/adapters/email"
	"rsvptracker/internal/cli"
	"rsvptracker/internal/domain"
	"rsvptracker/internal/repository/postgres"
	"rsvptracker/internal/services"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	console := cli.NewConsole(stdin, stdout)
	if len(args) == 0 || isHelp(args[0]) {
		printUsage(stdout)
		return nil
	}
	if _, ok := commands[args[0]]; !ok {
		printUsage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg.Environment, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	store := postgres.NewStore(db)
	a := &app{
		cfg:     cfg,
		console: console,
		maint:   services.NewMaintenanceService(store, postgres.NewSchemaAdmin(db), logger),
		migrate: func() error { return postgres.ApplyMigrations(db) },
		newReport: func() (domain.ReportService, error) {
			mailer, err := email.NewMailer(email.MailerConfig{
				Provider:    cfg.Mailer.Provider,
				FromAddress: cfg.Mailer.FromAddress,
				FromName:    cfg.Mailer.FromName,
				SES: email.SESConfig{
					Region:             cfg.Mailer.Region,
					AccessKeyID:        cfg.Mailer.AccessKeyID,
					SecretAccessKey:    cfg.Mailer.SecretAccessKey,
					InsecureSkipVerify: cfg.Mailer.InsecureSkipVerify,
				},
			}, logger)
			if err != nil {
				return nil, err
			}
			return services.NewReportService(store.Guests(), mailer, email.NewTemplateRenderer()), nil
		},
	}
	return a.dispatch(ctx, args)
}

func isHelp(arg string) bool {
	switch arg {
	case "help", "--help", "-h":
		return true
	}
	return false
}
