package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("crawl.seed_url", "https://example.com"))
	require.NoError(t, store.Set("crawl.max_pages", 25))
	require.NoError(t, store.Set("retrieval.relevance_threshold", 1.2))
	require.NoError(t, store.Set("crawl.enabled", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "string", got: store.GetString("crawl.seed_url"), want: "https://example.com"},
		{name: "int", got: store.GetInt("crawl.max_pages"), want: 25},
		{name: "float", got: store.GetFloat("retrieval.relevance_threshold"), want: 1.2},
		{name: "int widened to float", got: store.GetFloat("crawl.max_pages"), want: 25.0},
		{name: "bool", got: store.GetBool("crawl.enabled"), want: true},
		{name: "missing string", got: store.GetString("nope"), want: ""},
		{name: "missing int", got: store.GetInt("nope"), want: 0},
		{name: "wrong type int", got: store.GetInt("crawl.seed_url"), want: 0},
		{name: "wrong type float", got: store.GetFloat("crawl.seed_url"), want: 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

// TestConfigStore_PersistsNestedTables tests that dotted keys are written as TOML tables.
func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("crawl.max_pages", 5))
	require.NoError(t, store.Set("generation.seq2seq.model", "google/flan-t5-base"))
	require.NoError(t, store.Set("data_dir", "docs"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[crawl]")
	assert.Contains(t, string(raw), "[generation.seq2seq]")
	assert.NotContains(t, string(raw), `"crawl.max_pages"`)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.GetInt("crawl.max_pages"))
	assert.Equal(t, "google/flan-t5-base", reloaded.GetString("generation.seq2seq.model"))
	assert.Equal(t, "docs", reloaded.GetString("data_dir"))
	assert.Equal(t, []string{"crawl.max_pages", "data_dir", "generation.seq2seq.model"}, reloaded.Keys())
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
data_dir = "corpus"

[retrieval]
relevance_threshold = 1.5
top_k = 4
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "corpus", store.GetString("data_dir"))
	assert.InDelta(t, 1.5, store.GetFloat("retrieval.relevance_threshold"), 1e-9)
	assert.Equal(t, 4, store.GetInt("retrieval.top_k"))
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestConfigStore_NoTempFileLeftBehind(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("a", "b"))

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("crawl.max_pages", n)
			_ = store.GetInt("crawl.max_pages")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("crawl.max_pages")
	assert.True(t, ok)
}

func TestNestMap_ScalarWinsOverTable(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":   1,
		"a.b": 2,
		"c.d": 3,
	})

	assert.Equal(t, 1, nested["a"])
	assert.Equal(t, map[string]any{"d": 3}, nested["c"])
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"crawl": map[string]any{"max_pages": int64(3)},
		"top":   "x",
	}, "")

	assert.Equal(t, map[string]any{"crawl.max_pages": int64(3), "top": "x"}, flat)
}
