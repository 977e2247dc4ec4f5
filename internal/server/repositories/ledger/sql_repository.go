// Package ledger stores check-in events, at most one per identity and
// calendar date.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
)

const selectColumns = `SELECT id, identity_key, display_name, secondary_key, calendar_date, event_time FROM checkins`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create records event and fills in its ID. A second event for the same
// identity and date yields common.ErrAlreadyCheckedIn; the unique constraint
// decides, so concurrent attempts produce exactly one row.
func (r *SQLRepository) Create(ctx context.Context, event *models.CheckInEvent) (*models.CheckInEvent, error) {
	query :=
		`INSERT INTO checkins (identity_key, display_name, secondary_key, calendar_date, event_time)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (identity_key, calendar_date) DO NOTHING
		 RETURNING id`

	event.EventTime = event.EventTime.UTC()

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		event.IdentityKey, event.DisplayName, event.SecondaryKey, event.CalendarDate, event.EventTime).Scan(&event.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return event, nil
}

// ListByIdentity returns up to limit events of one identity; limit <= 0
// means no limit.
func (r *SQLRepository) ListByIdentity(ctx context.Context, identityKey string, limit int, mostRecentFirst bool) ([]models.CheckInEvent, error) {
	query := selectColumns + ` WHERE identity_key = ?`
	if mostRecentFirst {
		query += ` ORDER BY event_time DESC, id DESC`
	} else {
		query += ` ORDER BY event_time, id`
	}

	args := []any{identityKey}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return r.list(ctx, query, args...)
}

// ListByDate returns every event of calendarDate in event order.
func (r *SQLRepository) ListByDate(ctx context.Context, calendarDate string) ([]models.CheckInEvent, error) {
	return r.list(ctx, selectColumns+` WHERE calendar_date = ? ORDER BY event_time, id`, calendarDate)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]models.CheckInEvent, error) {
	items := []models.CheckInEvent{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for i := range items {
		items[i].EventTime = items[i].EventTime.UTC()
	}
	return items, nil
}

func (r *SQLRepository) CountDistinctDates(ctx context.Context, identityKey string) (int, error) {
	query := `SELECT COUNT(DISTINCT calendar_date) FROM checkins WHERE identity_key = ?`

	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), identityKey); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *SQLRepository) DeleteByIdentity(ctx context.Context, identityKey string) (int64, error) {
	query := `DELETE FROM checkins WHERE identity_key = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), identityKey)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
