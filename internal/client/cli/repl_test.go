package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	polls int
}

func (f *fakeExec) Poll(context.Context) { f.polls++ }

func (f *fakeExec) rec(s string) error { f.calls = append(f.calls, s); return nil }

func (f *fakeExec) CheckIn(context.Context) error { return f.rec("checkin") }
func (f *fakeExec) Input(_ context.Context, text string) error {
	return f.rec("input:" + text)
}
func (f *fakeExec) Cancel(context.Context) error { return f.rec("cancel") }
func (f *fakeExec) History(_ context.Context, limit int) error {
	return f.rec("history:" + strings.Repeat("*", limit))
}
func (f *fakeExec) Profile(context.Context) error { return f.rec("profile") }
func (f *fakeExec) Status(context.Context) error  { return f.rec("status") }
func (f *fakeExec) SetAvailability(_ context.Context, active bool) error {
	if active {
		return f.rec("open")
	}
	return f.rec("close")
}
func (f *fakeExec) DeleteIdentity(_ context.Context, key string) error {
	return f.rec("delete:" + key)
}
func (f *fakeExec) Report(_ context.Context, date string) error { return f.rec("report:" + date) }

func quietREPL(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint, origTerm := printlnFn, isTerminal
	printlnFn = func(a ...any) (int, error) {
		for _, v := range a {
			printed = append(printed, v.(string))
		}
		return 0, nil
	}
	isTerminal = func() bool { return false }
	t.Cleanup(func() { printlnFn, isTerminal = origPrint, origTerm })
	return &printed
}

func TestRunREPL_DispatchesCommandsAndText(t *testing.T) {
	quietREPL(t)

	input := strings.NewReader(strings.Join([]string{
		"/checkin",
		"Ann Smith",
		"  S1  ",
		"",
		"/history 2",
		"/history",
		"/profile",
		"/status",
		"/open",
		"/close",
		"/delete S1",
		"/delete AB 12",
		"/report 2024-01-01",
		"/report",
		"/cancel",
		"/exit",
		"/status",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "online" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"checkin", "input:Ann Smith", "input:S1",
		"history:**", "history:", "profile", "status",
		"open", "close", "delete:S1", "delete:AB 12", "report:2024-01-01", "report:", "cancel",
	}, exec.calls)
	assert.Equal(t, 16, exec.polls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	printed := quietREPL(t)

	input := strings.NewReader("/delete\n/history x\n/foo\n/help\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	out := strings.Join(*printed, "\n")
	assert.Contains(t, out, "Usage: /delete")
	assert.Contains(t, out, "Usage: /history")
	assert.Contains(t, out, "Unknown command:")
	assert.Contains(t, out, "/checkin")
}
