// Package mirror keeps a human-readable spreadsheet copy of each day's
// check-ins. It is never authoritative: the database is, and a full rebuild
// from the database replaces whatever is on disk.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/rollcall/internal/common"
	"github.com/dmitrijs2005/rollcall/internal/filex"
	"github.com/dmitrijs2005/rollcall/internal/logging"
)

const SheetName = "Attendance"

// Header is the first row of every mirror file.
var Header = []string{"Date", "Time", "Full Name", "Secondary Key"}

// Row is one check-in as shown in the spreadsheet.
type Row struct {
	Date         string
	Time         string
	FullName     string
	SecondaryKey string
}

func (r Row) cells() []any {
	return []any{r.Date, r.Time, r.FullName, r.SecondaryKey}
}

// Mirror writes one .xlsx file per calendar date into dir. Writers for the
// same date are serialized; different dates proceed independently.
type Mirror struct {
	dir    string
	logger logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a Mirror rooted at dir, creating the directory if needed.
func New(dir string, logger logging.Logger) (*Mirror, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &Mirror{dir: abs, logger: logger.With("module", "mirror"), locks: make(map[string]*sync.Mutex)}, nil
}

// Path returns the file that holds date's rows.
func (m *Mirror) Path(date string) string {
	return filepath.Join(m.dir, "attendance_"+date+".xlsx")
}

func (m *Mirror) lock(date string) func() {
	m.mu.Lock()
	l, ok := m.locks[date]
	if !ok {
		l = &sync.Mutex{}
		m.locks[date] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// AppendRow adds row to the file of row.Date. An unreadable existing file is
// replaced by one containing just the header and row.
func (m *Mirror) AppendRow(ctx context.Context, row Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := m.lock(row.Date)
	defer unlock()

	path := m.Path(row.Date)

	rows, err := readRows(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn(ctx, "mirror file unreadable, starting over", "path", path, "error", err)
		rows = nil
	}

	rows = append(rows, row)
	if err := writeRows(path, rows); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMirrorWriteFailed, err)
	}

	m.logger.Debug(ctx, "mirror row appended", "date", row.Date, "rows", len(rows))
	return nil
}

// RebuildReport rewrites date's file from rows, in the given order, and
// returns its path. Rebuilding twice from the same rows yields the same content.
func (m *Mirror) RebuildReport(ctx context.Context, date string, rows []Row) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	unlock := m.lock(date)
	defer unlock()

	path := m.Path(date)
	if err := writeRows(path, rows); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrMirrorWriteFailed, err)
	}

	m.logger.Info(ctx, "mirror rebuilt", "date", date, "rows", len(rows))
	return path, nil
}

// Rows reads back the data rows of date's file. A missing file yields
// common.ErrorNotFound.
func (m *Mirror) Rows(date string) ([]Row, error) {
	unlock := m.lock(date)
	defer unlock()

	rows, err := readRows(m.Path(date))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrorNotFound
	}
	return rows, err
}

func readRows(path string) ([]Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cells, err := f.GetRows(SheetName)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, c := range cells[1:] {
		for len(c) < len(Header) {
			c = append(c, "")
		}
		rows = append(rows, Row{Date: c[0], Time: c[1], FullName: c[2], SecondaryKey: c[3]})
	}
	return rows, nil
}

// writeRows is the single writer used by both append and rebuild, so both
// paths produce the same layout.
func writeRows(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := r.cells()
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return err
		}
	}

	return filex.WriteAtomic(path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
}
