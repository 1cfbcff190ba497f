package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacloud/domain/catalog"
)

func newEntry(t *testing.T, title string, category catalog.Category, tags ...string) *catalog.Entry {
	t.Helper()
	entry, err := catalog.NewEntry(title, category, "", "", tags)
	require.NoError(t, err)
	return entry
}

func TestSaveAndGet(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	entry := newEntry(t, "Primary Care Records", catalog.CategoryClinical)
	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)

	// Mutating the returned copy must not leak into the store.
	got.Title = "changed"
	again, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primary Care Records", again.Title)
}

func TestGetMissing(t *testing.T) {
	repo := NewEntryRepository()
	_, err := repo.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSaveReplaces(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	entry := newEntry(t, "Original", catalog.CategoryClinical)
	require.NoError(t, repo.Save(ctx, entry))

	entry.Title = "Renamed"
	require.NoError(t, repo.Save(ctx, entry))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Renamed", entries[0].Title)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		require.NoError(t, repo.Save(ctx, newEntry(t, title, catalog.CategoryOmics)))
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, title := range titles {
		assert.Equal(t, title, entries[i].Title)
	}
}

func TestDeleteRemovesEntryAndLinks(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	a := newEntry(t, "A", catalog.CategoryClinical)
	b := newEntry(t, "B", catalog.CategoryClinical)
	c := newEntry(t, "C", catalog.CategoryClinical)
	for _, e := range []*catalog.Entry{a, b, c} {
		require.NoError(t, repo.Save(ctx, e))
	}
	require.NoError(t, repo.SaveLink(ctx, catalog.Link{Source: a.ID, Target: b.ID}))
	require.NoError(t, repo.SaveLink(ctx, catalog.Link{Source: b.ID, Target: c.ID}))
	require.NoError(t, repo.SaveLink(ctx, catalog.Link{Source: c.ID, Target: a.ID}))

	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.GetByID(ctx, b.ID)
	assert.Error(t, err)

	links, err := repo.Links(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, catalog.Link{Source: c.ID, Target: a.ID}, links[0])
}

func TestDeleteMissing(t *testing.T) {
	repo := NewEntryRepository()
	assert.Error(t, repo.Delete(context.Background(), "missing"))
}

func TestSaveLinkDeduplicates(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	link := catalog.Link{Source: "a", Target: "b"}
	require.NoError(t, repo.SaveLink(ctx, link))
	require.NoError(t, repo.SaveLink(ctx, link))

	links, err := repo.Links(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestSearch(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	cancer := newEntry(t, "Cancer Registry", catalog.CategoryPublicHealth, "oncology")
	require.NoError(t, repo.Save(ctx, cancer))
	require.NoError(t, repo.Save(ctx, newEntry(t, "Claims Extract", catalog.CategoryAdministrative)))

	matches, err := repo.Search(ctx, "cancer", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, cancer.ID, matches[0].ID)

	matches, err = repo.Search(ctx, "", catalog.CategoryAdministrative)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Claims Extract", matches[0].Title)

	matches, err = repo.Search(ctx, "oncology", catalog.CategoryAdministrative)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSnapshot(t *testing.T) {
	repo := NewEntryRepository()
	ctx := context.Background()

	a := newEntry(t, "A", catalog.CategoryClinical)
	b := newEntry(t, "B", catalog.CategoryImaging)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, repo.SaveLink(ctx, catalog.Link{Source: a.ID, Target: b.ID}))

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Entries, 2)
	assert.Len(t, snap.Links, 1)
}
