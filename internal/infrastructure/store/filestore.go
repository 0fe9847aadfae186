package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

// FileStore persists the ticket snapshot as a JSON file on local disk, for
// deployments with a persistent volume.
//
// The version token is the SHA-256 of the file contents, checked under a
// process-local mutex before each write. That detects stale writes from
// concurrent requests within one process; a second process writing the same
// file remains last-writer-wins, which the deployment must rule out.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger logger.Interface
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.NewLogger().Named("filestore"),
	}
}

func (s *FileStore) Load(ctx context.Context) (*ticket.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First use, nothing persisted yet.
			return &ticket.Snapshot{Tickets: []*ticket.Ticket{}, Version: emptyVersion}, nil
		}
		return nil, fmt.Errorf("failed to read ticket file: %w", err)
	}

	tickets, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	return &ticket.Snapshot{Tickets: tickets, Version: contentVersion(data)}, nil
}

func (s *FileStore) Save(ctx context.Context, tickets []*ticket.Ticket, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentVersion()
	if err != nil {
		return err
	}
	if version != current {
		s.logger.Warnw("stale snapshot write rejected", "path", s.path)
		return ticket.ErrVersionConflict
	}

	data, err := encodeSnapshot(tickets)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Write to a temp file in the same directory and rename over the
	// target, so a crash mid-write never truncates the previous snapshot.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ticket file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ticket file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ticket file: %w", err)
	}

	return nil
}

func (s *FileStore) currentVersion() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyVersion, nil
		}
		return "", fmt.Errorf("failed to read ticket file: %w", err)
	}
	return contentVersion(data), nil
}

// emptyVersion is the token handed out for a store that has never been
// written. Distinct from "" so callers can still pass it back to Save.
const emptyVersion = "empty"

func contentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
