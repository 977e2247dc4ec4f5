package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/mirror"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

// DefaultHistoryLimit caps History when the caller passes no limit.
const DefaultHistoryLimit = 30

// Mirror is the spreadsheet projection written after each check-in.
type Mirror interface {
	AppendRow(ctx context.Context, row mirror.Row) error
	RebuildReport(ctx context.Context, date string, rows []mirror.Row) (string, error)
}

// Reply is the outcome of a conversational step.
type Reply struct {
	// Stage is where the requester's dialogue stands after the step.
	Stage Stage
	// Pending is set when a check-in was requested while a registration
	// dialogue was already open; nothing changed.
	Pending bool
	// Registered is set when this step created the identity.
	Registered bool
	Identity   *models.Identity
	// Event is the recorded check-in, if any.
	Event *models.CheckInEvent
	// MirrorDegraded is set when the check-in is committed but the
	// spreadsheet could not be updated.
	MirrorDegraded bool
}

// History is a participant's own attendance record.
type History struct {
	Identity  *models.Identity
	Events    []models.CheckInEvent
	TotalDays int
}

// Profile summarises a registered participant.
type Profile struct {
	Identity  *models.Identity
	TotalDays int
}

// AttendanceService drives registration and check-in for requesters.
type AttendanceService struct {
	identities   *IdentityService
	ledger       *LedgerService
	mirror       Mirror
	availability *Availability
	dialogues    *Dialogues
	clock        timex.Clock
	loc          *time.Location
	logger       logging.Logger
}

func NewAttendanceService(
	identities *IdentityService,
	ledger *LedgerService,
	m Mirror,
	availability *Availability,
	dialogues *Dialogues,
	clock timex.Clock,
	loc *time.Location,
	logger logging.Logger,
) *AttendanceService {
	return &AttendanceService{
		identities:   identities,
		ledger:       ledger,
		mirror:       m,
		availability: availability,
		dialogues:    dialogues,
		clock:        clock,
		loc:          loc,
		logger:       logger.With("module", "attendance"),
	}
}

// CheckIn handles a check-in request. Registered requesters are checked in
// directly; unknown requesters are led into the registration dialogue.
func (s *AttendanceService) CheckIn(ctx context.Context, requester string) (*Reply, error) {
	if !s.availability.IsActive() {
		return nil, common.ErrServiceInactive
	}

	identity, err := s.identities.Lookup(ctx, requester)
	switch {
	case err == nil:
		return s.checkIn(ctx, identity, &Reply{Identity: identity})
	case !errors.Is(err, common.ErrorNotFound):
		return nil, err
	}

	dlg, started := s.dialogues.Start(requester)
	if started {
		s.logger.Debug(ctx, "registration started", "identity", requester)
	}
	return &Reply{Stage: dlg.Stage, Pending: !started}, nil
}

// Input feeds a line of text into the requester's registration dialogue.
// The final step registers the identity and checks it in right away.
func (s *AttendanceService) Input(ctx context.Context, requester, text string) (*Reply, error) {
	dlg, complete, err := s.dialogues.Advance(requester, text)
	if err != nil {
		return nil, err
	}
	if !complete {
		return &Reply{Stage: dlg.Stage}, nil
	}

	identity, err := s.identities.Register(ctx, requester, dlg.DisplayName, text)
	if err != nil {
		s.logger.Info(ctx, "registration rejected", "identity", requester, "error", err)
		return nil, err
	}
	s.logger.Info(ctx, "identity registered", "identity", identity.IdentityKey, "secondary_key", identity.SecondaryKey)

	return s.checkIn(ctx, identity, &Reply{Registered: true, Identity: identity})
}

// Cancel abandons the requester's registration dialogue, if any.
func (s *AttendanceService) Cancel(ctx context.Context, requester string) bool {
	return s.dialogues.Cancel(requester)
}

// checkIn records today's event and mirrors it. Mirror failures only degrade
// the reply.
func (s *AttendanceService) checkIn(ctx context.Context, identity *models.Identity, reply *Reply) (*Reply, error) {
	now := s.clock.Now()
	date := timex.DateOf(now, s.loc)

	event, err := s.ledger.RecordCheckIn(ctx, identity, date, now)
	if err != nil {
		return nil, err
	}
	reply.Event = event
	reply.Stage = StageIdle

	if err := s.mirror.AppendRow(ctx, EventRow(event, s.loc)); err != nil {
		s.logger.Error(ctx, "mirror append failed", "identity", identity.IdentityKey, "date", date, "error", err)
		reply.MirrorDegraded = true
	}

	s.logger.Info(ctx, "checked in", "identity", identity.IdentityKey, "date", date)
	return reply, nil
}

// EventRow renders a check-in as a spreadsheet row in loc.
func EventRow(e *models.CheckInEvent, loc *time.Location) mirror.Row {
	return mirror.Row{
		Date:         e.CalendarDate,
		Time:         e.EventTime.In(loc).Format(common.TimeLayout),
		FullName:     e.DisplayName,
		SecondaryKey: e.SecondaryKey,
	}
}

// History returns the requester's most recent check-ins, newest first.
func (s *AttendanceService) History(ctx context.Context, requester string, limit int) (*History, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	identity, err := s.identities.Lookup(ctx, requester)
	if err != nil {
		return nil, err
	}

	events, err := s.ledger.ListByIdentity(ctx, requester, limit, true)
	if err != nil {
		return nil, err
	}

	total, err := s.ledger.CountDistinctDates(ctx, requester)
	if err != nil {
		return nil, err
	}

	return &History{Identity: identity, Events: events, TotalDays: total}, nil
}

// Profile returns the requester's identity and attendance total.
func (s *AttendanceService) Profile(ctx context.Context, requester string) (*Profile, error) {
	identity, err := s.identities.Lookup(ctx, requester)
	if err != nil {
		return nil, err
	}

	total, err := s.ledger.CountDistinctDates(ctx, requester)
	if err != nil {
		return nil, err
	}

	return &Profile{Identity: identity, TotalDays: total}, nil
}

// Status reports whether check-ins are accepted.
func (s *AttendanceService) Status() bool {
	return s.availability.IsActive()
}

// SweepDialogues drops abandoned registration dialogues.
func (s *AttendanceService) SweepDialogues(ctx context.Context) int {
	n := s.dialogues.Sweep()
	if n > 0 {
		s.logger.Debug(ctx, "expired registration dialogues removed", "count", n)
	}
	return n
}
