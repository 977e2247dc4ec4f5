// Package repotest opens throwaway migrated databases for repository and
// service tests.
package repotest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/rollcall/internal/server/migrations"
)

// NewSQLite returns an in-memory SQLite database with the schema applied.
// The pool is limited to one connection so the in-memory database is shared
// and writes serialize the way they do in production.
func NewSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db.DB, goose.DialectSQLite3))
	return db
}
