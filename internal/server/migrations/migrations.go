// Package migrations embeds the goose SQL migrations for every supported
// dialect and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// FS returns the migration directory for dialect.
func FS(dialect goose.Dialect) (fs.FS, error) {
	switch dialect {
	case goose.DialectSQLite3:
		return fs.Sub(Migrations, "sqlite")
	case goose.DialectPostgres:
		return fs.Sub(Migrations, "postgres")
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// Up applies all pending migrations for dialect.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	fsys, err := FS(dialect)
	if err != nil {
		return err
	}

	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
