// Package fixer runs the scan, confirm, fix and verify cycle over a store.
package fixer

import (
	"context"
	"fmt"

	"github.com/grovetools/recfix/internal/event"
	"github.com/grovetools/recfix/internal/prompt"
	"github.com/grovetools/recfix/internal/store"
)

// Options tunes a run.
type Options struct {
	// DryRun normalizes and reports without writing or asking.
	DryRun bool
	// UniqueIDs bumps the sequence of synthesized ids until they do not
	// collide with an id already in the table or assigned in this run.
	UniqueIDs bool
	// RemoveStale deletes the item stored under the old id when a record's
	// id changed.
	RemoveStale bool
	// BackupPath, when set, receives the scanned items before any write.
	BackupPath string
}

// Failure is a record that could not be fixed.
type Failure struct {
	ID  string
	Err error
}

// Result summarizes a run.
type Result struct {
	Scanned   int
	Fixed     int
	Removed   int
	Failures  []Failure
	Cancelled bool
	DryRun    bool
}

// Change is one record's transformation.
type Change struct {
	Index  int
	Old    store.Item
	OldID  string
	Record event.Record
}

// Reporter receives progress from a run.
type Reporter interface {
	Scanned(storeName string, items []store.Item)
	NoRecords()
	BackupWritten(path string, count int)
	Cancelled()
	Fixing(change Change)
	Saved(change Change)
	StaleRemoved(id string)
	RecordFailed(failure Failure)
	Summary(result Result)
	Verified(items []store.Item)
}

// Fixer repairs every record of a store.
type Fixer struct {
	store      store.Store
	normalizer *event.Normalizer
	confirm    prompt.Confirmer
	report     Reporter
	opts       Options
}

// New creates a Fixer.
func New(s store.Store, n *event.Normalizer, c prompt.Confirmer, r Reporter, opts Options) *Fixer {
	return &Fixer{
		store:      s,
		normalizer: n,
		confirm:    c,
		report:     r,
		opts:       opts,
	}
}

// Run scans the store, asks for confirmation and rewrites every record.
// Only a failed initial scan, backup or prompt aborts the run; per-record
// failures are collected in the Result.
func (f *Fixer) Run(ctx context.Context) (*Result, error) {
	items, err := f.store.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning table: %w", err)
	}

	result := &Result{Scanned: len(items), DryRun: f.opts.DryRun}
	f.report.Scanned(f.store.Name(), items)
	if len(items) == 0 {
		f.report.NoRecords()
		return result, nil
	}

	if f.opts.BackupPath != "" {
		if err := store.NewFileStore(f.opts.BackupPath).WriteItems(items); err != nil {
			return nil, fmt.Errorf("writing backup: %w", err)
		}
		f.report.BackupWritten(f.opts.BackupPath, len(items))
	}

	if !f.opts.DryRun {
		ok, err := f.confirm.Confirm(fmt.Sprintf("Do you want to fix these %d records?", len(items)))
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Cancelled = true
			f.report.Cancelled()
			return result, nil
		}
	}

	ids := newIDAllocator(items, f.opts.UniqueIDs)
	for i, item := range items {
		change := Change{Index: i + 1, Old: item, OldID: store.ItemID(item)}
		if err := f.fixOne(ctx, &change, ids, result); err != nil {
			failure := Failure{ID: displayID(change.OldID), Err: err}
			result.Failures = append(result.Failures, failure)
			f.report.RecordFailed(failure)
		}
	}

	f.report.Summary(*result)
	if f.opts.DryRun {
		return result, nil
	}

	final, err := f.store.Scan(ctx)
	if err != nil {
		return result, fmt.Errorf("verifying table: %w", err)
	}
	f.report.Verified(final)
	return result, nil
}

func (f *Fixer) fixOne(ctx context.Context, change *Change, ids *idAllocator, result *Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalizing record: %v", r)
		}
	}()

	change.Record = ids.normalize(f.normalizer, change.Old)
	f.report.Fixing(*change)
	if f.opts.DryRun {
		return nil
	}

	if err := f.store.Put(ctx, change.Record); err != nil {
		return err
	}
	result.Fixed++
	f.report.Saved(*change)

	if f.opts.RemoveStale && isStale(change) {
		if err := f.store.Delete(ctx, change.OldID); err != nil {
			return fmt.Errorf("removing stale item: %w", err)
		}
		result.Removed++
		f.report.StaleRemoved(change.OldID)
	}
	return nil
}

// isStale reports whether the old item lives under a key the new record
// does not overwrite.
func isStale(change *Change) bool {
	old, ok := event.Lookup(change.Old, event.FieldID).Str()
	return ok && old != "" && old != change.Record.ID
}

// SampleID returns the id of one record, for pointing the companion
// verification tool at real data.
func SampleID(ctx context.Context, s store.Store) (string, bool, error) {
	item, ok, err := s.Sample(ctx)
	if err != nil || !ok {
		return "", ok, err
	}
	return store.ItemID(item), true, nil
}

func displayID(id string) string {
	if id == "" {
		return "NO_ID"
	}
	return id
}
