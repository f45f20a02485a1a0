package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

func testSnapshot() *driven.IndexSnapshot {
	doc := domain.NewWebpageDocument("doc-1", "https://example.com/a", "A", "alpha beta")
	return &driven.IndexSnapshot{
		Chunks: []domain.Chunk{
			domain.ChunkOf(doc, 0, "alpha"),
			domain.ChunkOf(doc, 1, "beta"),
		},
		Embeddings: [][]float32{{1, 0, 0}, {0, 1, 0.5}},
		ANN:        []byte("serialized"),
		Dimensions: 3,
		Model:      "all-minilm",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIndexFile_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "vector_store.db")
	store := NewIndexFile()

	require.NoError(t, store.Save(ctx, path, testSnapshot()))

	got, ok := store.Load(ctx, path)
	require.True(t, ok)
	assert.Equal(t, testSnapshot(), got)
}

func TestIndexFile_SaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "vector_store.db")
	store := NewIndexFile()

	require.NoError(t, store.Save(ctx, path, testSnapshot()))

	second := testSnapshot()
	second.Chunks = second.Chunks[:1]
	second.Embeddings = second.Embeddings[:1]
	second.Model = "other"
	require.NoError(t, store.Save(ctx, path, second))

	got, ok := store.Load(ctx, path)
	require.True(t, ok)
	assert.Len(t, got.Chunks, 1)
	assert.Equal(t, "other", got.Model)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestIndexFile_Save_NoANN(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")
	snap := testSnapshot()
	snap.ANN = nil

	require.NoError(t, NewIndexFile().Save(ctx, path, snap))

	got, ok := NewIndexFile().Load(ctx, path)
	require.True(t, ok)
	assert.Nil(t, got.ANN)
}

func TestIndexFile_Save_Rejects(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	mismatched := testSnapshot()
	mismatched.Embeddings = mismatched.Embeddings[:1]

	assert.Error(t, NewIndexFile().Save(ctx, filepath.Join(dir, "a.db"), nil))
	assert.ErrorIs(t, NewIndexFile().Save(ctx, filepath.Join(dir, "b.db"), mismatched), domain.ErrInvalidInput)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIndexFile_Load_Unusable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(t *testing.T, path string)
	}{
		{
			name:  "missing file",
			setup: func(t *testing.T, path string) {},
		},
		{
			name: "not a database",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("definitely not sqlite"), 0600))
			},
		},
		{
			name: "unknown format version",
			setup: func(t *testing.T, path string) {
				require.NoError(t, NewIndexFile().Save(ctx, path, testSnapshot()))
				execOn(t, path, "UPDATE meta SET value = '99' WHERE key = 'format_version'")
			},
		},
		{
			name: "row count mismatch",
			setup: func(t *testing.T, path string) {
				require.NoError(t, NewIndexFile().Save(ctx, path, testSnapshot()))
				execOn(t, path, "DELETE FROM embeddings WHERE row = 1")
			},
		},
		{
			name: "wrong vector size",
			setup: func(t *testing.T, path string) {
				require.NoError(t, NewIndexFile().Save(ctx, path, testSnapshot()))
				execOn(t, path, "UPDATE meta SET value = '4' WHERE key = 'dimensions'")
			},
		},
		{
			name: "missing tables",
			setup: func(t *testing.T, path string) {
				execOn(t, path, "CREATE TABLE unrelated (x INTEGER)")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vector_store.db")
			tc.setup(t, path)

			snap, ok := NewIndexFile().Load(ctx, path)
			assert.False(t, ok)
			assert.Nil(t, snap)
		})
	}
}

func execOn(t *testing.T, path, stmt string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(stmt)
	require.NoError(t, err)
}
