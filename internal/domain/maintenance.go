package domain

import "context"

// SchemaAdmin lists and drops tables in the backing database.
type SchemaAdmin interface {
	ListTables(ctx context.Context) ([]string, error)
	DropTable(ctx context.Context, name string) error
}

// MergeStats reports what an export-merge did to the target file.
type MergeStats struct {
	Added     int // in the store, not in the file
	Updated   int // in both, file row differed
	Unchanged int // in both, identical
	Preserved int // only in the file, kept as is
}

// Total is the number of rows written.
func (m MergeStats) Total() int {
	return m.Added + m.Updated + m.Unchanged + m.Preserved
}

// LoadStats reports the outcome of an initial load.
type LoadStats struct {
	Created int
	Skipped int
}

// MaintenanceService groups the out-of-band administrative operations.
// None of these are reachable over HTTP.
type MaintenanceService interface {
	ResetResponses(ctx context.Context) (int64, error)
	CountGuests(ctx context.Context) (int64, error)
	DeleteAllGuests(ctx context.Context, confirmed bool) (int64, error)
	DropAllTables(ctx context.Context, confirmed bool) ([]string, error)
	ExportGuests(ctx context.Context, path string) (int, error)
	ExportMergeGuests(ctx context.Context, path string) (MergeStats, error)
	LoadInitialGuests(ctx context.Context, path string) (LoadStats, error)
}
