package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/core/logging"
	"github.com/grovetools/recfix/internal/event"
	"github.com/sirupsen/logrus"
)

// FileStore is a Store over a JSON file holding an array of items, such as
// a table export. Every call reads or rewrites the whole file.
type FileStore struct {
	path   string
	logger *logrus.Entry
}

// NewFileStore returns a store reading and writing path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: logging.NewLogger("recfix-store-file"),
	}
}

// Name implements Store.
func (s *FileStore) Name() string {
	return "file:" + s.path
}

// Scan returns every object in the file. Elements that are not objects are
// skipped.
func (s *FileStore) Scan(ctx context.Context) ([]Item, error) {
	return s.load()
}

// Sample returns the first item in the file.
func (s *FileStore) Sample(ctx context.Context) (Item, bool, error) {
	items, err := s.load()
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return items[0], true, nil
}

// Put upserts rec by id.
func (s *FileStore) Put(ctx context.Context, rec event.Record) error {
	items, err := s.load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	encoded, err := rec.Item()
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}

	replaced := false
	for i, item := range items {
		if ItemID(item) == rec.ID {
			items[i] = encoded
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, encoded)
	}

	return s.WriteItems(items)
}

// Delete removes every item whose id is id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	items, err := s.load()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if ItemID(item) != id {
			kept = append(kept, item)
		}
	}
	return s.WriteItems(kept)
}

// WriteItems replaces the file contents with items.
func (s *FileStore) WriteItems(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) load() ([]Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	items := make([]Item, 0, len(raw))
	for i, r := range raw {
		m, ok := event.ValueOf(r).Map()
		if !ok {
			s.logger.WithField("file", s.path).WithField("index", i).Debug("Skipping non-object element")
			continue
		}
		items = append(items, m)
	}
	return items, nil
}
