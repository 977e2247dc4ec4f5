// Package repomanager provides a concrete RepositoryManager for SQLite and
// PostgreSQL, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/migrations"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/identities"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/ledger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// SQLRepositoryManager vends SQL-backed repository implementations and
// exposes a schema migration hook for its dialect.
type SQLRepositoryManager struct {
	dialect goose.Dialect
}

// Identities returns an identities.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Identities(db dbx.DBTX) identities.Repository {
	return identities.NewSQLRepository(db)
}

// Ledger returns a ledger.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Ledger(db dbx.DBTX) ledger.Repository {
	return ledger.NewSQLRepository(db)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := migrateUp(ctx, db, m.dialect); err != nil {
		return err
	}
	return nil
}

// NewSQLiteRepositoryManager constructs a SQLite-backed RepositoryManager.
func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLRepositoryManager{dialect: goose.DialectSQLite3}
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &SQLRepositoryManager{dialect: goose.DialectPostgres}
}

// sqlitePragmas are appended to every SQLite DSN that does not set them.
var sqlitePragmas = []string{
	"_pragma=busy_timeout(5000)",
	"_pragma=foreign_keys(1)",
	"_pragma=journal_mode(WAL)",
}

// SQLiteDSN turns a plain file path into a modernc DSN with the pragmas the
// store relies on.
func SQLiteDSN(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	for _, p := range sqlitePragmas {
		name := p[:strings.Index(p, "(")]
		if strings.Contains(dsn, name) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}

// sqlxOpen is a seam for tests.
var sqlxOpen = sqlx.Open

// Open connects to the configured database, verifies it and returns the pool
// together with the matching RepositoryManager. Migrations are not run.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, RepositoryManager, error) {
	var m RepositoryManager

	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		dsn = SQLiteDSN(dsn)
		m = NewSQLiteRepositoryManager()
	case DriverPostgres:
		m = NewPostgresRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlxOpen(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, m, nil
}
