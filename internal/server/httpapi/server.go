// Package httpapi serves the HTTP side-channel: a health check and report
// downloads for the administrator.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/logging"
	"github.com/dmitrijs2005/rollcall/internal/server/auth"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

// Pinger reports whether the transactional store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReportFiles locates the mirror file of a date.
type ReportFiles interface {
	Path(date string) string
}

type Server struct {
	address   string
	db        Pinger
	files     ReportFiles
	isAdmin   func(identityKey string) bool
	jwtSecret []byte
	logger    logging.Logger
}

func NewServer(address string, l logging.Logger, db Pinger, files ReportFiles, isAdmin func(string) bool, secretKey string) *Server {
	return &Server{
		address:   address,
		db:        db,
		files:     files,
		isAdmin:   isAdmin,
		jwtSecret: []byte(secretKey),
		logger:    l.With("module", "http_server"),
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.With(s.adminOnly).Get("/reports/{date}", s.downloadReport)

	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Debug(ctx, "write error", "error", err)
	}
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			http.Error(w, common.ErrorUnauthorized.Error(), http.StatusUnauthorized)
			return
		}

		identityKey, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			http.Error(w, common.ErrorUnauthorized.Error(), http.StatusUnauthorized)
			return
		}

		if !s.isAdmin(identityKey) {
			http.Error(w, common.ErrForbidden.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) downloadReport(w http.ResponseWriter, r *http.Request) {
	date, err := timex.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	path := s.files.Path(date)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "no report for "+date, http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "open report", "path", path, "error", err)
		http.Error(w, common.ErrorInternal.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, common.ErrorInternal.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
