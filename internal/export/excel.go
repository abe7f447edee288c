// Package export snapshots the attendance table into an xlsx file at a
// well-known path. The file is regenerated whole on every refresh; a
// header-only file is still a valid export.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"qrollcall/internal/metrics"
	"qrollcall/internal/store"
)

const sheet = "Sheet1"

// Header is the fixed column order of every export.
var Header = []string{"id", "roll_no", "name", "date", "time"}

// Exporter writes attendance snapshots to a single output path.
type Exporter struct {
	store *store.Store
	path  string
}

// New creates an exporter writing to path.
func New(s *store.Store, path string) *Exporter {
	return &Exporter{store: s, path: path}
}

// Path returns the output file location.
func (e *Exporter) Path() string {
	return e.path
}

// Refresh rewrites the export from the current table contents, oldest row
// first. Concurrent refreshes are last-writer-wins; the write-then-rename
// keeps a concurrent download reading a complete file.
func (e *Exporter) Refresh(ctx context.Context) error {
	records, err := e.store.ListAttendance(ctx, store.OldestFirst)
	if err != nil {
		return fmt.Errorf("export: list attendance: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
		row := []interface{}{r.ID, r.RollNo, r.Name, r.Date, r.Time}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i, err)
		}
	}

	tmp := e.path + ".tmp"
	w, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("export: save: %w", err)
	}
	if err := f.Write(w); err != nil {
		w.Close()
		return fmt.Errorf("export: save: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: save: %w", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return fmt.Errorf("export: replace: %w", err)
	}
	metrics.ExportsGenerated.Inc()
	return nil
}

// ClearAndReexport empties the attendance table and leaves a fresh
// header-only export, ready for the next day's check-ins.
func (e *Exporter) ClearAndReexport(ctx context.Context) error {
	if err := e.store.ClearAttendance(ctx); err != nil {
		return fmt.Errorf("export: clear attendance: %w", err)
	}
	if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("export: remove old file: %w", err)
	}
	return e.Refresh(ctx)
}
