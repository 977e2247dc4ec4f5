package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/client/client"
	"github.com/dmitrijs2005/rollcall/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	out    io.Writer

	mu   sync.Mutex
	Mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewAttendanceClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, out: os.Stdout}, nil
}

// printf serialises output of the REPL and the watcher.
func (a *App) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// pollNotifications prints pending notifications and updates the mode.
func (a *App) pollNotifications(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	msgs, err := a.api.Notifications(ctx)
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
	if err != nil {
		return
	}

	for _, m := range msgs {
		a.printf("* %s\n", m)
	}
}

// Poll is run by the REPL before each prompt.
func (a *App) Poll(ctx context.Context) {
	a.pollNotifications(ctx)
}

// StartNotificationWatcher polls every interval until ctx is done.
func (a *App) StartNotificationWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.pollNotifications(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("rollcall console (type /help for commands)\n")
	if a.config.AccessToken == "" {
		a.printf("No access token configured; only /status is available.\n")
	}

	go a.StartNotificationWatcher(ctx, a.config.PollInterval)

	runREPL(ctx, a, func() string { return string(a.mode()) }, bufio.NewScanner(os.Stdin))
}
