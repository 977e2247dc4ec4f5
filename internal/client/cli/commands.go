package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/rpc"
)

func (a *App) fail(err error) error {
	a.printf("Error: %v\n", err)
	return err
}

func (a *App) printReply(r *rpc.Reply) {
	switch r.Stage {
	case rpc.StageAwaitingName:
		if r.Pending {
			a.printf("Registration is already in progress.\n")
		} else {
			a.printf("You are not registered yet.\n")
		}
		a.printf("Please enter your full name:\n")
		return
	case rpc.StageAwaitingSecondaryKey:
		if r.Pending {
			a.printf("Registration is already in progress.\n")
		}
		a.printf("Please enter your secondary key:\n")
		return
	}

	if r.Registered && r.Identity != nil {
		a.printf("Registered as %s (%s).\n", r.Identity.DisplayName, r.Identity.SecondaryKey)
	}
	if r.Event != nil {
		a.printf("Checked in: %s on %s at %s.\n",
			r.Event.DisplayName, r.Event.CalendarDate, r.Event.EventTime.Local().Format(common.TimeLayout))
	}
	if r.MirrorDegraded {
		a.printf("Note: the attendance spreadsheet could not be updated; the check-in is saved.\n")
	}
}

func (a *App) CheckIn(ctx context.Context) error {
	r, err := a.api.CheckIn(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.printReply(r)
	return nil
}

func (a *App) Input(ctx context.Context, text string) error {
	r, err := a.api.Input(ctx, text)
	if err != nil {
		return a.fail(err)
	}
	a.printReply(r)
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	cancelled, err := a.api.Cancel(ctx)
	if err != nil {
		return a.fail(err)
	}
	if cancelled {
		a.printf("Registration cancelled.\n")
	} else {
		a.printf("Nothing to cancel.\n")
	}
	return nil
}

func (a *App) History(ctx context.Context, limit int) error {
	h, err := a.api.History(ctx, limit)
	if err != nil {
		return a.fail(err)
	}
	a.printf("%s, %d day(s) attended.\n", h.Identity.DisplayName, h.TotalDays)
	for _, e := range h.Events {
		a.printf("  %s %s\n", e.CalendarDate, e.EventTime.Local().Format(common.TimeLayout))
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Name:          %s\n", p.Identity.DisplayName)
	a.printf("Secondary key: %s\n", p.Identity.SecondaryKey)
	a.printf("Registered:    %s\n", p.Identity.RegisteredAt.Local().Format(time.DateTime))
	a.printf("Days attended: %d\n", p.TotalDays)
	if p.IsAdmin {
		a.printf("Role:          administrator\n")
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	active, err := a.api.Status(ctx)
	if err != nil {
		return a.fail(err)
	}
	if active {
		a.printf("Check-in is open.\n")
	} else {
		a.printf("Check-in is closed.\n")
	}
	return nil
}

func (a *App) SetAvailability(ctx context.Context, active bool) error {
	active, err := a.api.SetAvailability(ctx, active)
	if err != nil {
		return a.fail(err)
	}
	if active {
		a.printf("Check-in opened.\n")
	} else {
		a.printf("Check-in closed.\n")
	}
	return nil
}

func (a *App) DeleteIdentity(ctx context.Context, secondaryKey string) error {
	id, err := a.api.DeleteIdentity(ctx, secondaryKey)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Deleted %s (%s).\n", id.DisplayName, id.SecondaryKey)
	return nil
}

func (a *App) Report(ctx context.Context, date string) error {
	r, err := a.api.GenerateReport(ctx, date)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Report for %s: %d check-in(s).\n", r.Date, r.Count)
	for _, e := range r.Events {
		a.printf("  %s  %-30s %s\n", e.EventTime.Local().Format(common.TimeLayout), e.DisplayName, e.SecondaryKey)
	}
	a.printf("File: %s\n", r.Path)
	if r.URL != "" {
		a.printf("Download: %s\n", r.URL)
	}
	return nil
}
