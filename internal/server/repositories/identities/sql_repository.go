// Package identities stores registered participants.
package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts identity. Uniqueness of both keys is left to the table
// constraints; on conflict the existing row is looked up on the same handle
// to tell ErrAlreadyRegistered from ErrDuplicateSecondaryKey.
func (r *SQLRepository) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	query :=
		`INSERT INTO identities (identity_key, display_name, secondary_key, registered_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT DO NOTHING
		 RETURNING identity_key`

	identity.RegisteredAt = identity.RegisteredAt.UTC()

	var key string
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		identity.IdentityKey, identity.DisplayName, identity.SecondaryKey, identity.RegisteredAt).Scan(&key)

	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if _, err := r.GetByKey(ctx, identity.IdentityKey); err == nil {
		return nil, common.ErrAlreadyRegistered
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	return nil, common.ErrDuplicateSecondaryKey
}

func (r *SQLRepository) GetByKey(ctx context.Context, identityKey string) (*models.Identity, error) {
	return r.getOne(ctx,
		`SELECT identity_key, display_name, secondary_key, registered_at FROM identities
		 WHERE identity_key = ?`, identityKey)
}

func (r *SQLRepository) GetBySecondaryKey(ctx context.Context, secondaryKey string) (*models.Identity, error) {
	return r.getOne(ctx,
		`SELECT identity_key, display_name, secondary_key, registered_at FROM identities
		 WHERE secondary_key = ?`, secondaryKey)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.Identity, error) {
	identity := &models.Identity{}
	err := r.db.GetContext(ctx, identity, r.db.Rebind(query), arg)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	identity.RegisteredAt = identity.RegisteredAt.UTC()
	return identity, nil
}

func (r *SQLRepository) ExistsBySecondaryKey(ctx context.Context, secondaryKey string) (bool, error) {
	query := `SELECT COUNT(*) FROM identities WHERE secondary_key = ?`

	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), secondaryKey); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

// Delete removes the identity row only. Ledger rows reference it, so callers
// must delete those first within the same transaction.
func (r *SQLRepository) Delete(ctx context.Context, identityKey string) error {
	query := `DELETE FROM identities WHERE identity_key = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), identityKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Identity, error) {
	query :=
		`SELECT identity_key, display_name, secondary_key, registered_at FROM identities
		 ORDER BY registered_at, identity_key`

	var items []models.Identity
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for i := range items {
		items[i].RegisteredAt = items[i].RegisteredAt.UTC()
	}
	return items, nil
}
