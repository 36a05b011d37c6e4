// Package store reads raw event items from a table and writes canonical
// records back.
package store

import (
	"context"
	"fmt"

	"github.com/grovetools/recfix/internal/event"
)

// Item is a raw table item. Numbers arrive as float64.
type Item = map[string]any

// Store is a table of event items keyed on "id".
type Store interface {
	// Scan returns every item in the table.
	Scan(ctx context.Context) ([]Item, error)
	// Sample returns one item, if the table has any.
	Sample(ctx context.Context) (Item, bool, error)
	// Put writes rec, replacing any item with the same id.
	Put(ctx context.Context, rec event.Record) error
	// Delete removes the item with the given id.
	Delete(ctx context.Context, id string) error
	// Name describes the store for status output.
	Name() string
}

// Backend names.
const (
	BackendDynamoDB = "dynamodb"
	BackendFile     = "file"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Region   string
	Table    string
	Endpoint string
	Path     string
}

// Open returns the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendDynamoDB, "":
		return NewDynamoStore(ctx, opts.Region, opts.Table, opts.Endpoint)
	case BackendFile:
		return NewFileStore(opts.Path), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// ItemID returns the id of an item for display, or "" when it has none.
func ItemID(item Item) string {
	return event.Lookup(item, event.FieldID).String()
}
