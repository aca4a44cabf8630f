// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export lays out finalized questions grouped by type and writes
// them as an Excel workbook or a CSV file.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/qbank/pkg/types"
)

// ErrExport is returned when the output cannot be rendered or written.
var ErrExport = errors.New("export failed")

// Exporter renders question lists with a fixed column layout and format.
type Exporter struct {
	columns []string
	format  types.OutputFormat
	log     *zap.Logger
	now     func() time.Time
}

// New returns an Exporter for cfg. Columns that do not map to a question
// field are logged once here and render as empty cells.
func New(cfg types.OutputConfig, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	for _, col := range cfg.Columns {
		if !knownColumn(col) {
			log.Warn("unknown output column, cells will be empty", zap.String("column", col))
		}
	}
	format := cfg.Format
	if format == "" {
		format = types.OutputExcel
	}
	return &Exporter{
		columns: cfg.Columns,
		format:  format,
		log:     log,
		now:     time.Now,
	}
}

// DefaultFileName is the output name used when no path is given.
func DefaultFileName(t time.Time, format types.OutputFormat) string {
	return "题库导出_" + t.Format("20060102_150405") + format.Extension()
}

// Render returns the encoded output for questions.
func (e *Exporter) Render(questions []types.Question) ([]byte, error) {
	rows := Layout(questions)
	switch e.format {
	case types.OutputExcel:
		return renderExcel(e.columns, rows)
	case types.OutputCSV:
		return renderCSV(e.columns, rows)
	default:
		return nil, fmt.Errorf("unsupported format %q", e.format)
	}
}

// Export writes questions to path, or to DefaultFileName in the working
// directory when path is empty, and returns the path written. The file
// appears only once it is complete.
func (e *Exporter) Export(questions []types.Question, path string) (string, error) {
	if path == "" {
		path = DefaultFileName(e.now(), e.format)
	}

	data, err := e.Render(questions)
	if err != nil {
		e.log.Error("rendering export", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("%w: rendering %s: %v", ErrExport, path, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		e.log.Error("writing export", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	}

	e.log.Info("export written",
		zap.String("path", path),
		zap.String("format", string(e.format)),
		zap.Int("questions", len(questions)),
	)
	return path, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, removing the temp file on any failure.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".qbank-export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	return nil
}
