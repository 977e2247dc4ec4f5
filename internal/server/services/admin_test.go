package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

func TestAdmin_ForbiddenForOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.admin.SetAvailability(ctx, "u1", false), common.ErrForbidden)
	_, err := f.admin.DeleteIdentity(ctx, "u1", "S1")
	require.ErrorIs(t, err, common.ErrForbidden)
	_, err = f.admin.GenerateReport(ctx, "u1", "")
	require.ErrorIs(t, err, common.ErrForbidden)

	assert.True(t, f.availability.IsActive(), "flag untouched")
}

func TestAdmin_EmptyAdminIDDisablesAdmin(t *testing.T) {
	f := newFixture(t)
	f.admin.adminID = ""
	assert.False(t, f.admin.IsAdmin(""))
}

func TestSetAvailability_NotifiesEveryoneDespiteFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, k := range []string{"u1", "u2", "u3"} {
		_, err := f.identities.Register(ctx, k, "Name "+k, "S"+k)
		require.NoError(t, err)
	}
	f.notifier.fail = map[string]bool{"u2": true}

	require.NoError(t, f.admin.SetAvailability(ctx, adminID, false))

	assert.False(t, f.availability.IsActive())
	assert.Equal(t, []string{"Attendance check-in is now closed."}, f.notifier.sent["u1"])
	assert.Empty(t, f.notifier.sent["u2"])
	assert.Equal(t, []string{"Attendance check-in is now closed."}, f.notifier.sent["u3"], "loop continues after a failure")

	require.NoError(t, f.admin.SetAvailability(ctx, adminID, true))
	assert.Equal(t, "Attendance check-in is now open.", f.notifier.sent["u1"][1])
}

func TestDeleteIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.admin.DeleteIdentity(ctx, adminID, "S404")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = f.register(t, "u1", "Alice", "S100")
	require.NoError(t, err)
	_, err = f.register(t, "u2", "Bob", "S200")
	require.NoError(t, err)

	_, err = f.admin.DeleteIdentity(ctx, adminID, "S100")
	require.NoError(t, err)

	events, err := f.ledger.ListByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "u2", events[0].IdentityKey)

	ok, err := f.identities.ExistsBySecondaryKey(ctx, "S100")
	require.NoError(t, err)
	assert.False(t, ok, "secondary key is free again")
}

func TestDeleteIdentity_DropsOpenDialogue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.identities.Register(ctx, "u1", "Alice", "S100")
	require.NoError(t, err)
	f.dialogues.Start("u1")

	_, err = f.admin.DeleteIdentity(ctx, adminID, "S100")
	require.NoError(t, err)
	assert.Equal(t, 0, f.dialogues.Len())
}

func TestGenerateReport_RebuildsFromLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.register(t, "u1", "Alice", "S100")
	require.NoError(t, err)
	f.clock.Advance(5 * time.Minute)
	_, err = f.register(t, "u2", "Bob", "S200")
	require.NoError(t, err)

	// A diverged mirror is replaced by the ledger's view.
	_, err = f.mirror.RebuildReport(ctx, "2024-01-01", nil)
	require.NoError(t, err)

	report, err := f.admin.GenerateReport(ctx, adminID, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", report.Date)
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, "attendance_2024-01-01.xlsx", filepath.Base(report.Path))
	assert.Empty(t, report.URL)

	rows, err := f.mirror.Rows("2024-01-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].FullName)
	assert.Equal(t, "09:20:00", rows[1].Time)
}

func TestGenerateReport_DateHandling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.admin.GenerateReport(ctx, adminID, "01/02/2024")
	require.ErrorIs(t, err, common.ErrValidation)

	report, err := f.admin.GenerateReport(ctx, adminID, "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count)
	assert.Empty(t, report.Events)
}

func TestGenerateReport_Publishes(t *testing.T) {
	pub := &fakePublisher{url: "https://example.test/r.xlsx"}
	f := newFixture(t, withPublisher(pub))

	report, err := f.admin.GenerateReport(context.Background(), adminID, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, pub.url, report.URL)
	assert.Equal(t, "2024-01-01", pub.date)
	assert.Equal(t, report.Path, pub.path)
}

func TestGenerateReport_Failures(t *testing.T) {
	t.Run("publish", func(t *testing.T) {
		f := newFixture(t, withPublisher(&fakePublisher{err: errors.New("s3 down")}))
		_, err := f.admin.GenerateReport(context.Background(), adminID, "2024-01-01")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3 down")
	})

	t.Run("mirror", func(t *testing.T) {
		f := newFixture(t, withMirror(failingMirror{}))
		_, err := f.admin.GenerateReport(context.Background(), adminID, "2024-01-01")
		require.Error(t, err)
	})
}

func (f *fixture) mirrorCount(t *testing.T, date string) int {
	t.Helper()
	rows, err := f.mirror.Rows(date)
	if errors.Is(err, common.ErrorNotFound) {
		return 0
	}
	require.NoError(t, err)
	return len(rows)
}

func TestDeleteIdentity_KeepsMirrorInStepWithLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.register(t, "u1", "Alice", "S100")
	require.NoError(t, err)
	_, err = f.register(t, "u2", "Bob", "S200")
	require.NoError(t, err)
	f.clock.Advance(24 * time.Hour)
	_, err = f.attendance.CheckIn(ctx, "u1")
	require.NoError(t, err)

	_, err = f.admin.DeleteIdentity(ctx, adminID, "S100")
	require.NoError(t, err)

	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		assert.Equal(t, f.ledgerCount(t, date), f.mirrorCount(t, date), date)
	}
	rows, err := f.mirror.Rows("2024-01-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].FullName)

	// Registering again on the same day appends exactly one row.
	reply, err := f.register(t, "u1", "Alice", "S100")
	require.NoError(t, err)
	require.NotNil(t, reply.Event)
	assert.Equal(t, 1, f.ledgerCount(t, "2024-01-02"))
	assert.Equal(t, 1, f.mirrorCount(t, "2024-01-02"))
}

func TestDeleteIdentity_MirrorFailureDoesNotUndoDelete(t *testing.T) {
	f := newFixture(t, withMirror(failingMirror{}))
	ctx := context.Background()

	_, err := f.register(t, "u1", "Alice", "S100")
	require.NoError(t, err)

	deleted, err := f.admin.DeleteIdentity(ctx, adminID, "S100")
	require.NoError(t, err)
	assert.Equal(t, "u1", deleted.IdentityKey)
	assert.Equal(t, 0, f.ledgerCount(t, "2024-01-01"))
}
