package ticket

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by Save when the provided version token is
// stale, meaning another writer replaced the snapshot since it was loaded.
// Callers are expected to re-load and retry.
var ErrVersionConflict = errors.New("record store: version conflict")

// Snapshot is the full ticket collection as read from the store, together
// with the backend's opaque version token. An empty Version means the
// backend cannot detect lost updates and the write is last-writer-wins.
type Snapshot struct {
	Tickets []*Ticket
	Version string
}

// RecordStore persists the whole ticket collection as one snapshot.
// The collection is always read in full and written in full; there is no
// per-record update. Load on a store that has never been written returns an
// empty snapshot, not an error.
type RecordStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, tickets []*Ticket, version string) error
}
