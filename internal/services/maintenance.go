package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"rsvptracker/internal/domain"
	"rsvptracker/internal/tabular"
)

type maintenanceService struct {
	store  domain.GuestStore
	schema domain.SchemaAdmin
	logger *slog.Logger
}

// NewMaintenanceService returns the administrative operations over store and schema.
func NewMaintenanceService(store domain.GuestStore, schema domain.SchemaAdmin, logger *slog.Logger) domain.MaintenanceService {
	return &maintenanceService{store: store, schema: schema, logger: logger}
}

func (s *maintenanceService) ResetResponses(ctx context.Context) (int64, error) {
	n, err := s.store.Guests().ResetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset responses: %w", err)
	}
	return n, nil
}

func (s *maintenanceService) CountGuests(ctx context.Context) (int64, error) {
	n, err := s.store.Guests().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count guests: %w", err)
	}
	return n, nil
}

// DeleteAllGuests removes every guest in one transaction. An empty table
// returns zero without requiring confirmation.
func (s *maintenanceService) DeleteAllGuests(ctx context.Context, confirmed bool) (int64, error) {
	total, err := s.CountGuests(ctx)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if !confirmed {
		return 0, domain.ErrNotConfirmed
	}

	var deleted int64
	err = s.store.WithTx(ctx, func(repo domain.GuestRepository) error {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete guests: %w", err)
	}
	return deleted, nil
}

// DropAllTables drops every table in the schema, one statement per table.
// There is no rollback; on failure the tables dropped so far are returned
// with the error.
func (s *maintenanceService) DropAllTables(ctx context.Context, confirmed bool) ([]string, error) {
	if !confirmed {
		return nil, domain.ErrNotConfirmed
	}
	tables, err := s.schema.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	dropped := make([]string, 0, len(tables))
	for _, name := range tables {
		if err := s.schema.DropTable(ctx, name); err != nil {
			return dropped, fmt.Errorf("drop table %s: %w", name, err)
		}
		s.logger.InfoContext(ctx, "dropped table", "table", name)
		dropped = append(dropped, name)
	}
	return dropped, nil
}

// ExportGuests writes every guest to path ordered by name. Nothing is
// written when there are no guests.
func (s *maintenanceService) ExportGuests(ctx context.Context, path string) (int, error) {
	guests, err := s.store.Guests().GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list guests: %w", err)
	}
	if len(guests) == 0 {
		return 0, nil
	}
	rows := make([]tabular.Row, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, tabular.FromGuest(g))
	}
	tabular.SortRows(rows)
	if err := tabular.WriteFile(path, rows); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(rows), nil
}

// ExportMergeGuests overlays the store onto the file at path. Guests that
// only exist in the file are kept.
func (s *maintenanceService) ExportMergeGuests(ctx context.Context, path string) (domain.MergeStats, error) {
	existing, err := tabular.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.MergeStats{}, fmt.Errorf("read %s: %w", path, err)
		}
		existing = nil
	}

	guests, err := s.store.Guests().GetAll(ctx)
	if err != nil {
		return domain.MergeStats{}, fmt.Errorf("list guests: %w", err)
	}
	current := make([]tabular.Row, 0, len(guests))
	for _, g := range guests {
		current = append(current, tabular.FromGuest(g))
	}

	merged, stats := tabular.Merge(existing, current)
	if err := tabular.WriteFile(path, merged); err != nil {
		return domain.MergeStats{}, fmt.Errorf("write %s: %w", path, err)
	}
	return stats, nil
}

// LoadInitialGuests creates a guest for every row of the file whose phone
// number is not stored yet. All creates share one transaction; any failing
// row rolls back the whole run.
func (s *maintenanceService) LoadInitialGuests(ctx context.Context, path string) (domain.LoadStats, error) {
	if path == "" {
		return domain.LoadStats{}, fmt.Errorf("%w: no path configured", domain.ErrSourceNotFound)
	}
	rows, err := tabular.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.LoadStats{}, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return domain.LoadStats{}, fmt.Errorf("read %s: %w", path, err)
	}

	var stats domain.LoadStats
	err = s.store.WithTx(ctx, func(repo domain.GuestRepository) error {
		seen := make(map[string]bool, len(rows))
		for i, row := range rows {
			line := i + 2 // header is line 1
			g, err := row.Guest()
			if err != nil {
				return fmt.Errorf("line %d (%s): %w", line, row.PhoneNumber, err)
			}
			exists := seen[g.PhoneNumber]
			if !exists {
				if exists, err = repo.Exists(ctx, g.PhoneNumber); err != nil {
					return fmt.Errorf("line %d (%s): %w", line, g.PhoneNumber, err)
				}
			}
			if exists {
				s.logger.WarnContext(ctx, "guest already exists, skipping", "phone_number", g.PhoneNumber, "name", g.Name)
				stats.Skipped++
				continue
			}
			if err := repo.Create(ctx, g); err != nil {
				return fmt.Errorf("line %d (%s): %w", line, g.PhoneNumber, err)
			}
			seen[g.PhoneNumber] = true
			stats.Created++
		}
		return nil
	})
	if err != nil {
		return domain.LoadStats{}, fmt.Errorf("load guests: %w", err)
	}
	return stats, nil
}
