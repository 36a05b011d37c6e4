package store

import (
	"context"
	"fmt"

	"github.com/grovetools/recfix/internal/event"
)

// MemoryStore keeps items in insertion order in memory.
type MemoryStore struct {
	Items []Item

	// ScanErr, PutErr and DeleteErr inject failures.
	ScanErr   error
	PutErr    func(rec event.Record) error
	DeleteErr func(id string) error

	Puts    []event.Record
	Deletes []string
}

// NewMemoryStore returns a store seeded with items.
func NewMemoryStore(items ...Item) *MemoryStore {
	return &MemoryStore{Items: items}
}

// Name implements Store.
func (s *MemoryStore) Name() string { return "memory" }

// Scan implements Store.
func (s *MemoryStore) Scan(ctx context.Context) ([]Item, error) {
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	out := make([]Item, len(s.Items))
	copy(out, s.Items)
	return out, nil
}

// Sample implements Store.
func (s *MemoryStore) Sample(ctx context.Context) (Item, bool, error) {
	if s.ScanErr != nil {
		return nil, false, s.ScanErr
	}
	if len(s.Items) == 0 {
		return nil, false, nil
	}
	return s.Items[0], true, nil
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, rec event.Record) error {
	if s.PutErr != nil {
		if err := s.PutErr(rec); err != nil {
			return err
		}
	}
	item, err := rec.Item()
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}
	s.Puts = append(s.Puts, rec)

	for i, existing := range s.Items {
		if ItemID(existing) == rec.ID {
			s.Items[i] = item
			return nil
		}
	}
	s.Items = append(s.Items, item)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if s.DeleteErr != nil {
		if err := s.DeleteErr(id); err != nil {
			return err
		}
	}
	s.Deletes = append(s.Deletes, id)

	kept := s.Items[:0]
	for _, item := range s.Items {
		if ItemID(item) != id {
			kept = append(kept, item)
		}
	}
	s.Items = kept
	return nil
}
