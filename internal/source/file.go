package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/model"
)

// fileLayout is the column contract of the local file variant. Headers may
// be Vietnamese or English; '.' is the decimal point.
var fileLayout = layout{
	dateColumns:    []string{"Ngày", "date"},
	gainColumns:    []string{"Lãi/Lỗ", "gain", "pnl"},
	depositColumns: []string{"Nạp", "deposit"},
	noteColumns:    []string{"Ghi chú", "note"},
	dateLayout:     "2006-01-02",
	separators:     []string{","},
}

// FileLoader reads the journal from a local CSV file.
type FileLoader struct {
	path string
	log  zerolog.Logger
}

// NewFileLoader creates a loader for the CSV file at path.
func NewFileLoader(path string, log zerolog.Logger) *FileLoader {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileLoader{
		path: path,
		log:  log.With().Str("component", "file_loader").Logger(),
	}
}

// Identity returns the absolute file path.
func (l *FileLoader) Identity() string {
	return "file:" + l.path
}

// Load reads and cleans the file. The context is only checked up front;
// local reads of this size do not need cancellation.
func (l *FileLoader) Load(ctx context.Context) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", apperrors.ErrSourceUnavailable, l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer f.Close()

	entries, skipped, err := parseCSV(f, fileLayout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(l.path), err)
	}

	table := newTable(l.Identity(), entries, skipped)
	logLoad(l.log, table)
	return table, nil
}
