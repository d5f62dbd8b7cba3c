package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"rsvptracker/internal/domain"
)

type schemaAdmin struct {
	DB *sql.DB
}

// NewSchemaAdmin returns a domain.SchemaAdmin for the public schema.
func NewSchemaAdmin(db *sql.DB) domain.SchemaAdmin {
	return &schemaAdmin{DB: db}
}

func (a *schemaAdmin) ListTables(ctx context.Context) ([]string, error) {
	rows, err := a.DB.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (a *schemaAdmin) DropTable(ctx context.Context, name string) error {
	_, err := a.DB.ExecContext(ctx, `DROP TABLE IF EXISTS `+pq.QuoteIdentifier(name)+` CASCADE`)
	return err
}
