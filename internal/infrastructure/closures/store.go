// Package closures persists the site closure calendar. The calendar is a
// single JSON object edited as a whole from the admin page; the store
// treats it as an opaque document.
package closures

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type Store struct {
	path   string
	mu     sync.Mutex
	logger logger.Interface
}

func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: logger.NewLogger().Named("closures"),
	}
}

// Load returns the stored calendar, or an empty object when none has been
// saved yet.
func (s *Store) Load(_ context.Context) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return json.RawMessage("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read closures file: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("closures file %s is not valid JSON", s.path)
	}

	return json.RawMessage(data), nil
}

// Save replaces the calendar wholesale. The document must be a JSON
// object; anything else is rejected before touching the file.
func (s *Store) Save(_ context.Context, doc json.RawMessage) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(doc, &obj); err != nil {
		return fmt.Errorf("closures document must be a JSON object: %w", err)
	}

	pretty, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode closures document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "closures-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(pretty, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write closures file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace closures file: %w", err)
	}

	s.logger.Infow("closure calendar updated", "path", s.path)
	return nil
}
