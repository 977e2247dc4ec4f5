// Package services contains server-side business logic: the identity store,
// the attendance ledger, the registration/check-in state machine and the
// administration controller.
package services

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/dbx"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

// IdentityService owns registered identities.
type IdentityService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	clock       timex.Clock
}

func NewIdentityService(db *sqlx.DB, m repomanager.RepositoryManager, clock timex.Clock) *IdentityService {
	return &IdentityService{db: db, repomanager: m, clock: clock}
}

// Register creates an identity. It fails with common.ErrAlreadyRegistered when
// identityKey exists and with common.ErrDuplicateSecondaryKey when
// secondaryKey belongs to someone else. Blank fields are common.ErrValidation.
func (s *IdentityService) Register(ctx context.Context, identityKey, displayName, secondaryKey string) (*models.Identity, error) {
	identity := &models.Identity{
		IdentityKey:  strings.TrimSpace(identityKey),
		DisplayName:  strings.TrimSpace(displayName),
		SecondaryKey: strings.TrimSpace(secondaryKey),
		RegisteredAt: s.clock.Now().UTC(),
	}
	if identity.IdentityKey == "" || identity.DisplayName == "" || identity.SecondaryKey == "" {
		return nil, common.ErrValidation
	}

	var created *models.Identity
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Identities(tx).Create(ctx, identity)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return created, nil
}

// Lookup returns the identity or common.ErrorNotFound.
func (s *IdentityService) Lookup(ctx context.Context, identityKey string) (*models.Identity, error) {
	identity, err := s.repomanager.Identities(s.db).GetByKey(ctx, identityKey)
	return identity, storageErr(err)
}

func (s *IdentityService) LookupBySecondaryKey(ctx context.Context, secondaryKey string) (*models.Identity, error) {
	identity, err := s.repomanager.Identities(s.db).GetBySecondaryKey(ctx, strings.TrimSpace(secondaryKey))
	return identity, storageErr(err)
}

func (s *IdentityService) ExistsBySecondaryKey(ctx context.Context, secondaryKey string) (bool, error) {
	ok, err := s.repomanager.Identities(s.db).ExistsBySecondaryKey(ctx, strings.TrimSpace(secondaryKey))
	return ok, storageErr(err)
}

// Delete removes the identity and all of its check-ins in one transaction.
func (s *IdentityService) Delete(ctx context.Context, identityKey string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Ledger(tx).DeleteByIdentity(ctx, identityKey); err != nil {
			return err
		}
		return s.repomanager.Identities(tx).Delete(ctx, identityKey)
	})
	return storageErr(err)
}

// DeleteBySecondaryKey resolves secondaryKey and removes that identity with
// its check-ins, all in one transaction. It returns the deleted identity and
// the distinct calendar dates it had checked in on.
func (s *IdentityService) DeleteBySecondaryKey(ctx context.Context, secondaryKey string) (*models.Identity, []string, error) {
	var (
		identity *models.Identity
		dates    []string
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		identity, err = s.repomanager.Identities(tx).GetBySecondaryKey(ctx, strings.TrimSpace(secondaryKey))
		if err != nil {
			return err
		}

		events, err := s.repomanager.Ledger(tx).ListByIdentity(ctx, identity.IdentityKey, 0, false)
		if err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(events))
		for _, e := range events {
			if _, ok := seen[e.CalendarDate]; !ok {
				seen[e.CalendarDate] = struct{}{}
				dates = append(dates, e.CalendarDate)
			}
		}

		if _, err := s.repomanager.Ledger(tx).DeleteByIdentity(ctx, identity.IdentityKey); err != nil {
			return err
		}
		return s.repomanager.Identities(tx).Delete(ctx, identity.IdentityKey)
	})
	if err != nil {
		return nil, nil, storageErr(err)
	}
	return identity, dates, nil
}

// All lists every registered identity.
func (s *IdentityService) All(ctx context.Context) ([]models.Identity, error) {
	items, err := s.repomanager.Identities(s.db).List(ctx)
	return items, storageErr(err)
}
