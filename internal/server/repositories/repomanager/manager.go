package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/identities"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/ledger"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Ledger(db dbx.DBTX) ledger.Repository
}
