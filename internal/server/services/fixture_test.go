package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/mirror"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

const adminID = "admin"

// 2024-01-01 09:15 UTC.
var day1 = time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)

type fixture struct {
	db           *sqlx.DB
	clock        *timex.FakeClock
	mirror       *mirror.Mirror
	identities   *IdentityService
	ledger       *LedgerService
	availability *Availability
	dialogues    *Dialogues
	attendance   *AttendanceService
	admin        *AdminService
	notifier     *recordingNotifier
}

type fixtureOpt func(*fixtureCfg)

type fixtureCfg struct {
	mirror    Mirror
	publisher Publisher
	ttl       time.Duration
}

func withMirror(m Mirror) fixtureOpt       { return func(c *fixtureCfg) { c.mirror = m } }
func withPublisher(p Publisher) fixtureOpt { return func(c *fixtureCfg) { c.publisher = p } }
func withTTL(d time.Duration) fixtureOpt   { return func(c *fixtureCfg) { c.ttl = d } }

func newFixture(t *testing.T, opts ...fixtureOpt) *fixture {
	t.Helper()

	cfg := &fixtureCfg{ttl: 15 * time.Minute}
	for _, o := range opts {
		o(cfg)
	}

	f := &fixture{
		db:       repotest.NewSQLite(t),
		clock:    timex.NewFakeClock(day1),
		notifier: &recordingNotifier{},
	}

	m, err := mirror.New(t.TempDir(), logging.Discard())
	require.NoError(t, err)
	f.mirror = m
	var mir Mirror = m
	if cfg.mirror != nil {
		mir = cfg.mirror
	}

	rm := repomanager.NewSQLiteRepositoryManager()
	f.identities = NewIdentityService(f.db, rm, f.clock)
	f.ledger = NewLedgerService(f.db, rm)
	f.availability = NewAvailability(true)
	f.dialogues = NewDialogues(f.clock, cfg.ttl)
	f.attendance = NewAttendanceService(f.identities, f.ledger, mir, f.availability, f.dialogues, f.clock, time.UTC, logging.Discard())
	f.admin = NewAdminService(AdminDeps{
		AdminID:      adminID,
		Identities:   f.identities,
		Ledger:       f.ledger,
		Mirror:       mir,
		Availability: f.availability,
		Dialogues:    f.dialogues,
		Notifier:     f.notifier,
		Publisher:    cfg.publisher,
		Clock:        f.clock,
		Location:     time.UTC,
		Logger:       logging.Discard(),
	})
	return f
}

// register walks the full dialogue for key and returns the final reply.
func (f *fixture) register(t *testing.T, key, name, secondaryKey string) (*Reply, error) {
	t.Helper()
	ctx := context.Background()

	r, err := f.attendance.CheckIn(ctx, key)
	require.NoError(t, err)
	require.Equal(t, StageAwaitingName, r.Stage)

	r, err = f.attendance.Input(ctx, key, name)
	require.NoError(t, err)
	require.Equal(t, StageAwaitingSecondaryKey, r.Stage)

	return f.attendance.Input(ctx, key, secondaryKey)
}

func (f *fixture) ledgerCount(t *testing.T, date string) int {
	t.Helper()
	events, err := f.ledger.ListByDate(context.Background(), date)
	require.NoError(t, err)
	return len(events)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[string][]string
	fail map[string]bool
}

func (n *recordingNotifier) Notify(_ context.Context, identityKey, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail[identityKey] {
		return errors.New("recipient unreachable")
	}
	if n.sent == nil {
		n.sent = make(map[string][]string)
	}
	n.sent[identityKey] = append(n.sent[identityKey], message)
	return nil
}

type failingMirror struct{}

func (failingMirror) AppendRow(context.Context, mirror.Row) error {
	return errors.New("disk full")
}

func (failingMirror) RebuildReport(context.Context, string, []mirror.Row) (string, error) {
	return "", errors.New("disk full")
}

type fakePublisher struct {
	url  string
	err  error
	date string
	path string
}

func (p *fakePublisher) Publish(_ context.Context, date, path string) (string, error) {
	p.date, p.path = date, path
	return p.url, p.err
}
