package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfox-labs/docfox-cli/internal/core/domain"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := NewStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleDocument(id string) *domain.Document {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Document{
		ID:          id,
		Filename:    id + ".txt",
		RawText:     "raw body",
		CleanedText: "clean body",
		Chunks:      []domain.Chunk{{Label: "Intro", Text: "clean body"}},
		ContentHash: "hash-" + id,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-1")))

	saved, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1.txt", saved.Filename)
	require.Len(t, saved.Chunks, 1)
	assert.Equal(t, "Intro", saved.Chunks[0].Label)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	store := newTestStore(t, t.TempDir())

	_, err := store.GetDocument(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-1")))
	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-2")))
	require.NoError(t, store.Close())

	reopened := newTestStore(t, dir)

	docs, err := reopened.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, "doc-2", docs[1].ID)
}

func TestStore_ListDocuments_InsertionOrder(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"zz", "aa", "mm"} {
		require.NoError(t, store.SaveDocument(ctx, sampleDocument(id)))
	}

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "zz", docs[0].ID)
	assert.Equal(t, "aa", docs[1].ID)
	assert.Equal(t, "mm", docs[2].ID)
}

func TestStore_FindByContentHash(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-1")))

	found, err := store.FindByContentHash(ctx, "hash-doc-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "doc-1", found.ID)

	missing, err := store.FindByContentHash(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_DeleteDocument(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-1")))
	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err := store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.DeleteDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CorruptFileQuarantined(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "documents.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := newTestStore(t, dir)

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)

	// The broken file is kept for inspection.
	_, err = os.Stat(path + ".corrupt")
	assert.NoError(t, err)
}

func TestStore_ReloadsExternalChanges(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	writer := newTestStore(t, dir)
	reader := newTestStore(t, dir)

	// Prime the reader's cache.
	docs, err := reader.ListDocuments(ctx)
	require.NoError(t, err)
	require.Empty(t, docs)

	require.NoError(t, writer.SaveDocument(ctx, sampleDocument("doc-1")))

	assert.Eventually(t, func() bool {
		docs, err := reader.ListDocuments(ctx)
		return err == nil && len(docs) == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestStore_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveDocument(ctx, sampleDocument("doc-"+string(rune('a'+i)))))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "documents.json", entries[0].Name())
}
