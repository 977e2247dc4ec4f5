package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/mirror"
	"github.com/dmitrijs2005/rollcall/internal/server/models"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

// Publisher uploads a generated report and returns a download URL.
type Publisher interface {
	Publish(ctx context.Context, date, path string) (string, error)
}

// Report is the result of GenerateReport.
type Report struct {
	Date   string
	Count  int
	Path   string
	URL    string
	Events []models.CheckInEvent
}

// AdminService implements the operations reserved for the administrator.
type AdminService struct {
	adminID      string
	identities   *IdentityService
	ledger       *LedgerService
	mirror       Mirror
	availability *Availability
	dialogues    *Dialogues
	notifier     Notifier
	publisher    Publisher
	clock        timex.Clock
	loc          *time.Location
	logger       logging.Logger
}

// AdminDeps groups AdminService collaborators. Publisher may be nil.
type AdminDeps struct {
	AdminID      string
	Identities   *IdentityService
	Ledger       *LedgerService
	Mirror       Mirror
	Availability *Availability
	Dialogues    *Dialogues
	Notifier     Notifier
	Publisher    Publisher
	Clock        timex.Clock
	Location     *time.Location
	Logger       logging.Logger
}

func NewAdminService(d AdminDeps) *AdminService {
	return &AdminService{
		adminID:      d.AdminID,
		identities:   d.Identities,
		ledger:       d.Ledger,
		mirror:       d.Mirror,
		availability: d.Availability,
		dialogues:    d.Dialogues,
		notifier:     d.Notifier,
		publisher:    d.Publisher,
		clock:        d.Clock,
		loc:          d.Location,
		logger:       d.Logger.With("module", "admin"),
	}
}

// IsAdmin reports whether requester may run admin operations.
func (s *AdminService) IsAdmin(requester string) bool {
	return s.adminID != "" && requester == s.adminID
}

func (s *AdminService) authorize(requester string) error {
	if !s.IsAdmin(requester) {
		return common.ErrForbidden
	}
	return nil
}

// SetAvailability switches check-ins on or off and tells every registered
// identity. A failed notification is logged and the rest still go out.
func (s *AdminService) SetAvailability(ctx context.Context, requester string, active bool) error {
	if err := s.authorize(requester); err != nil {
		return err
	}

	changed := s.availability.Set(active)
	s.logger.Info(ctx, "availability set", "active", active, "changed", changed)

	if s.notifier == nil {
		return nil
	}

	recipients, err := s.identities.All(ctx)
	if err != nil {
		s.logger.Error(ctx, "cannot list notification recipients", "error", err)
		return nil
	}

	msg := "Attendance check-in is now closed."
	if active {
		msg = "Attendance check-in is now open."
	}

	failed := 0
	for _, r := range recipients {
		if err := s.notifier.Notify(ctx, r.IdentityKey, msg); err != nil {
			failed++
			s.logger.Warn(ctx, "notification failed", "identity", r.IdentityKey, "error", err)
		}
	}
	s.logger.Info(ctx, "availability notices sent", "recipients", len(recipients), "failed", failed)

	return nil
}

// DeleteIdentity removes the identity bound to secondaryKey together with its
// check-ins, and drops any open dialogue of that identity. The mirror files
// of the affected dates are rebuilt from the ledger; a failed rebuild is
// logged and does not undo the delete.
func (s *AdminService) DeleteIdentity(ctx context.Context, requester, secondaryKey string) (*models.Identity, error) {
	if err := s.authorize(requester); err != nil {
		return nil, err
	}

	identity, dates, err := s.identities.DeleteBySecondaryKey(ctx, secondaryKey)
	if err != nil {
		return nil, err
	}
	s.dialogues.Cancel(identity.IdentityKey)

	for _, date := range dates {
		if _, _, err := s.rebuild(ctx, date); err != nil {
			s.logger.Error(ctx, "mirror rebuild after delete failed", "identity", identity.IdentityKey, "date", date, "error", err)
		}
	}

	s.logger.Info(ctx, "identity deleted", "identity", identity.IdentityKey, "secondary_key", identity.SecondaryKey, "dates", len(dates))
	return identity, nil
}

// rebuild rewrites the mirror file of date from the ledger.
func (s *AdminService) rebuild(ctx context.Context, date string) (string, []models.CheckInEvent, error) {
	events, err := s.ledger.ListByDate(ctx, date)
	if err != nil {
		return "", nil, err
	}

	rows := make([]mirror.Row, 0, len(events))
	for i := range events {
		rows = append(rows, EventRow(&events[i], s.loc))
	}

	path, err := s.mirror.RebuildReport(ctx, date, rows)
	if err != nil {
		return "", nil, err
	}
	return path, events, nil
}

// GenerateReport rebuilds the mirror file of date from the ledger and, when a
// publisher is configured, uploads it. An empty date means today.
func (s *AdminService) GenerateReport(ctx context.Context, requester, date string) (*Report, error) {
	if err := s.authorize(requester); err != nil {
		return nil, err
	}

	if date == "" {
		date = timex.DateOf(s.clock.Now(), s.loc)
	} else {
		var err error
		if date, err = timex.ParseDate(date); err != nil {
			return nil, err
		}
	}

	path, events, err := s.rebuild(ctx, date)
	if err != nil {
		return nil, err
	}

	report := &Report{Date: date, Count: len(events), Path: path, Events: events}

	if s.publisher != nil {
		url, err := s.publisher.Publish(ctx, date, path)
		if err != nil {
			return nil, fmt.Errorf("publish report: %w", err)
		}
		report.URL = url
	}

	s.logger.Info(ctx, "report generated", "date", date, "count", report.Count, "published", report.URL != "")
	return report, nil
}
