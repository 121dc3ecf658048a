// Package history provides the run history backends: a rotating JSONL
// file, SQLite and memory.
package history

import (
	"fmt"

	"github.com/kilianp07/haulplan/config"
	corehistory "github.com/kilianp07/haulplan/core/history"
)

// New opens the backend selected by cfg.
func New(cfg config.HistoryConfig) (corehistory.Store, error) {
	var (
		st  corehistory.Store
		err error
	)
	switch cfg.Backend {
	case "jsonl":
		st, err = NewJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	case "sqlite":
		st, err = NewSQLiteStore(cfg.Path)
	case "memory":
		st = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", corehistory.ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", cfg.Backend, err)
	}
	return st, nil
}
