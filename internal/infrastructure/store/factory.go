package store

import (
	"fmt"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	sharedConfig "github.com/parapente-jp/flightpass/internal/shared/config"
)

// New selects the record store backend from configuration. The choice is
// made once at process start; business logic only ever sees the
// ticket.RecordStore interface.
func New(cfg *sharedConfig.StoreConfig) (ticket.RecordStore, error) {
	switch cfg.Backend {
	case "file":
		return NewFileStore(cfg.File.Path), nil
	case "github":
		return NewGitHubStore(&cfg.GitHub), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
