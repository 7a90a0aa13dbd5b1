package source

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/config"
	"github.com/ndewijer/pnl-dashboard/internal/database"
)

// New builds the loader selected by cfg.Kind. The returned close func
// releases whatever the loader holds open and is never nil.
func New(cfg config.SourceConfig, log zerolog.Logger) (Loader, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case config.SourceSheet:
		sheetURL := cfg.SheetURL
		if sheetURL == "" {
			sheetURL = SheetURL(cfg.SheetID, cfg.SheetName)
		}
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		return NewSheetLoader(sheetURL, client, log), noop, nil

	case config.SourceFile:
		return NewFileLoader(cfg.FilePath, log), noop, nil

	case config.SourceJournal:
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return NewJournalLoader(db, cfg.DBPath, log), db.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", apperrors.ErrUnknownSource, cfg.Kind)
	}
}
