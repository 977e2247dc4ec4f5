// Package server wires the rollcall components together and runs the gRPC
// endpoint, the HTTP side-channel and the dialogue sweeper until shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/config"
	"github.com/dmitrijs2005/rollcall/internal/server/httpapi"
	"github.com/dmitrijs2005/rollcall/internal/server/mirror"
	"github.com/dmitrijs2005/rollcall/internal/server/reports"
	"github.com/dmitrijs2005/rollcall/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rollcall/internal/server/services"
	"github.com/dmitrijs2005/rollcall/internal/timex"

	gs "github.com/dmitrijs2005/rollcall/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	logCloser  io.Closer
	db         *sqlx.DB
	attendance *services.AttendanceService
	admin      *services.AdminService
	mailbox    *gs.Mailbox
	mirror     *mirror.Mirror
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, closer, err := logging.New(logging.Options{Backend: c.LogBackend, Level: c.LogLevel, File: c.LogFile})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app, err := newApp(ctx, c, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	app.logCloser = closer
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	loc, err := timex.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone: %w", err)
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	m, err := mirror.New(c.MirrorDir, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mirror init error: %w", err)
	}

	clock := timex.System()
	ids := services.NewIdentityService(db, rm, clock)
	ledger := services.NewLedgerService(db, rm)
	availability := services.NewAvailability(c.StartActive)
	dialogues := services.NewDialogues(clock, c.RegistrationIdleTimeout)
	mailbox := gs.NewMailbox(0)

	deps := services.AdminDeps{
		AdminID:      c.AdminID,
		Identities:   ids,
		Ledger:       ledger,
		Mirror:       m,
		Availability: availability,
		Dialogues:    dialogues,
		Notifier:     mailbox,
		Clock:        clock,
		Location:     loc,
		Logger:       logger,
	}

	if c.S3Bucket != "" {
		p, err := reports.NewS3Publisher(ctx, reports.Config{
			Region:       c.S3Region,
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		deps.Publisher = p
	}

	if c.AdminID == "" {
		logger.Warn(ctx, "admin_id is not set, administrative operations are disabled")
	}

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		attendance: services.NewAttendanceService(ids, ledger, m, availability, dialogues, clock, loc, logger),
		admin:      services.NewAdminService(deps),
		mailbox:    mailbox,
		mirror:     m,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.attendance, app.admin, app.mailbox, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.db, app.mirror, app.admin.IsAdmin, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// runSweeper drops expired registration dialogues every interval.
func (app *App) runSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || app.config.RegistrationIdleTimeout <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.attendance.SweepDialogues(ctx)
		}
	}
}

// Run blocks until a signal arrives or a server fails, then releases the
// store and the log file.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "active", app.attendance.Status())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.runSweeper(ctx, app.config.SweepInterval)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close", "error", err)
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}
