package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies the embedded schema for the handle's dialect. Every
// statement is idempotent so it is safe to run on each start.
func (d *DB) Migrate(ctx context.Context) error {
	name := "schema/postgres.sql"
	if d.DriverName() == DriverSQLite {
		name = "schema/sqlite.sql"
	}
	sqlBytes, err := fs.ReadFile(schemaFS, name)
	if err != nil {
		return err
	}
	if _, err := d.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}
	return nil
}
