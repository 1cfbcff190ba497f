// Package memory provides an in-memory catalog repository for tests and
// local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"datacloud/domain/catalog"
	pkgerrors "datacloud/pkg/errors"
)

// EntryRepository implements ports.EntryRepository on process memory.
// Insertion order is preserved so snapshots render deterministically.
type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*catalog.Entry
	order   []string
	links   []catalog.Link
}

// NewEntryRepository creates an empty repository.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{entries: make(map[string]*catalog.Entry)}
}

// Save inserts or replaces an entry.
func (r *EntryRepository) Save(ctx context.Context, entry *catalog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.ID]; !exists {
		r.order = append(r.order, entry.ID)
	}
	clone := *entry
	r.entries[entry.ID] = &clone
	return nil
}

// GetByID fetches a single entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[id]
	if !exists {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("entry %q", id))
	}
	clone := *entry
	return &clone, nil
}

// Delete removes an entry and every link touching it.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return pkgerrors.NewNotFoundError(fmt.Sprintf("entry %q", id))
	}
	delete(r.entries, id)

	order := r.order[:0]
	for _, existing := range r.order {
		if existing != id {
			order = append(order, existing)
		}
	}
	r.order = order

	links := r.links[:0]
	for _, link := range r.links {
		if link.Source != id && link.Target != id {
			links = append(links, link)
		}
	}
	r.links = links
	return nil
}

// List returns every entry in insertion order.
func (r *EntryRepository) List(ctx context.Context) ([]catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]catalog.Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, *r.entries[id])
	}
	return entries, nil
}

// Search matches a term against title, description and tags, optionally
// restricted to one category.
func (r *EntryRepository) Search(ctx context.Context, term string, category catalog.Category) ([]catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []catalog.Entry
	for _, id := range r.order {
		entry := r.entries[id]
		if category != "" && entry.Category != category {
			continue
		}
		if !entry.Matches(term) {
			continue
		}
		matches = append(matches, *entry)
	}
	return matches, nil
}

// SaveLink stores a directed link, deduplicating exact repeats.
func (r *EntryRepository) SaveLink(ctx context.Context, link catalog.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.links {
		if existing == link {
			return nil
		}
	}
	r.links = append(r.links, link)
	return nil
}

// Links returns every stored link.
func (r *EntryRepository) Links(ctx context.Context) ([]catalog.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := make([]catalog.Link, len(r.links))
	copy(links, r.links)
	return links, nil
}

// Snapshot returns all entries and links as one renderable unit.
func (r *EntryRepository) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	links, err := r.Links(ctx)
	if err != nil {
		return nil, err
	}
	return &catalog.Snapshot{Entries: entries, Links: links}, nil
}
