package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
)

// LedgerService is the authoritative record of check-ins.
type LedgerService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
}

func NewLedgerService(db *sqlx.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m}
}

// RecordCheckIn stores one event for identity on calendarDate. A second call
// for the same pair fails with common.ErrAlreadyCheckedIn.
func (s *LedgerService) RecordCheckIn(ctx context.Context, identity *models.Identity, calendarDate string, eventTime time.Time) (*models.CheckInEvent, error) {
	event := &models.CheckInEvent{
		IdentityKey:  identity.IdentityKey,
		DisplayName:  identity.DisplayName,
		SecondaryKey: identity.SecondaryKey,
		CalendarDate: calendarDate,
		EventTime:    eventTime.UTC(),
	}

	created, err := s.repomanager.Ledger(s.db).Create(ctx, event)
	return created, storageErr(err)
}

func (s *LedgerService) ListByIdentity(ctx context.Context, identityKey string, limit int, mostRecentFirst bool) ([]models.CheckInEvent, error) {
	items, err := s.repomanager.Ledger(s.db).ListByIdentity(ctx, identityKey, limit, mostRecentFirst)
	return items, storageErr(err)
}

func (s *LedgerService) ListByDate(ctx context.Context, calendarDate string) ([]models.CheckInEvent, error) {
	items, err := s.repomanager.Ledger(s.db).ListByDate(ctx, calendarDate)
	return items, storageErr(err)
}

func (s *LedgerService) CountDistinctDates(ctx context.Context, identityKey string) (int, error) {
	n, err := s.repomanager.Ledger(s.db).CountDistinctDates(ctx, identityKey)
	return n, storageErr(err)
}
