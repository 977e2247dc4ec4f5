package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// isTerminal is a test seam; the prompt is only drawn for interactive stdin.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Poll(ctx context.Context)
	CheckIn(ctx context.Context) error
	Input(ctx context.Context, text string) error
	Cancel(ctx context.Context) error
	History(ctx context.Context, limit int) error
	Profile(ctx context.Context) error
	Status(ctx context.Context) error
	SetAvailability(ctx context.Context, active bool) error
	DeleteIdentity(ctx context.Context, secondaryKey string) error
	Report(ctx context.Context, date string) error
}

const helpText = `Commands:
  /checkin           check in for today (starts registration if needed)
  /cancel            abandon the registration in progress
  /history [n]       show your recent check-ins
  /profile           show your registration
  /status            show whether check-in is open
  /open, /close      open or close check-in (administrator)
  /delete <key>      delete an identity by secondary key (administrator)
  /report [date]     build the report for a date, YYYY-MM-DD (administrator)
  /exit              leave
Any other line answers the current registration question.`

// runREPL reads lines until EOF or /exit and dispatches them to a. Errors
// are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	interactive := isTerminal()

	for {
		a.Poll(ctx)
		if interactive {
			fmt.Printf("rollcall (%s)> ", statusFn())
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			_ = a.Input(ctx, line)
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "/help":
			printlnFn(helpText)

		case "/checkin", "/start":
			_ = a.CheckIn(ctx)

		case "/cancel":
			_ = a.Cancel(ctx)

		case "/history":
			limit := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					printlnFn("Usage: /history [n]")
					continue
				}
				limit = n
			}
			_ = a.History(ctx, limit)

		case "/profile":
			_ = a.Profile(ctx)

		case "/status":
			_ = a.Status(ctx)

		case "/open":
			_ = a.SetAvailability(ctx, true)

		case "/close":
			_ = a.SetAvailability(ctx, false)

		case "/delete":
			if len(args) == 0 {
				printlnFn("Usage: /delete <secondary key>")
				continue
			}
			_ = a.DeleteIdentity(ctx, strings.Join(args, " "))

		case "/report":
			date := ""
			if len(args) > 0 {
				date = args[0]
			}
			_ = a.Report(ctx, date)

		case "/exit", "/quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
