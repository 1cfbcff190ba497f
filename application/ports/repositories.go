// Package ports defines the persistence interfaces the application layer
// depends on. Implementations live under infrastructure/persistence.
package ports

import (
	"context"

	"datacloud/domain/catalog"
)

// EntryRepository stores catalog entries and the links between them.
type EntryRepository interface {
	// Save inserts or replaces an entry.
	Save(ctx context.Context, entry *catalog.Entry) error

	// GetByID fetches a single entry; a missing ID yields a NotFound
	// application error.
	GetByID(ctx context.Context, id string) (*catalog.Entry, error)

	// Delete removes an entry and every link touching it.
	Delete(ctx context.Context, id string) error

	// List returns every entry in insertion order.
	List(ctx context.Context) ([]catalog.Entry, error)

	// Search returns entries matching a free-text term, optionally
	// restricted to one category. An empty term matches everything.
	Search(ctx context.Context, term string, category catalog.Category) ([]catalog.Entry, error)

	// SaveLink stores a directed link between two existing entries.
	SaveLink(ctx context.Context, link catalog.Link) error

	// Links returns every stored link.
	Links(ctx context.Context) ([]catalog.Link, error)

	// Snapshot returns all entries plus all links as one unit, the
	// input the visualization stack renders from.
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}
