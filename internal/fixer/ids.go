package fixer

import (
	"github.com/grovetools/recfix/internal/event"
	"github.com/grovetools/recfix/internal/store"
)

type idAllocator struct {
	unique bool
	taken  map[string]bool
}

func newIDAllocator(items []store.Item, unique bool) *idAllocator {
	a := &idAllocator{unique: unique, taken: make(map[string]bool)}
	for _, item := range items {
		if !event.NeedsID(item) {
			a.taken[store.ItemID(item)] = true
		}
	}
	return a
}

// normalize converts item, picking the lowest free sequence number for a
// synthesized id when unique ids are on.
func (a *idAllocator) normalize(n *event.Normalizer, item store.Item) event.Record {
	if !a.unique || !event.NeedsID(item) {
		return n.Normalize(item)
	}

	seq := 1
	rec := n.NormalizeWithSequence(item, seq)
	for a.taken[rec.ID] {
		seq++
		rec = n.NormalizeWithSequence(item, seq)
	}
	a.taken[rec.ID] = true
	return rec
}
