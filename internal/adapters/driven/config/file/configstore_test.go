package file

import (
	"os"
	"path/filepath"
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
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ragdesk", "config.toml"), store.Path())
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.embed_url", "http://embed:8000"))
	require.NoError(t, store.Set("paging.limit", 50))

	assert.Equal(t, "http://embed:8000", store.GetString("api.embed_url"))
	assert.Equal(t, "", store.GetString("nonexistent"))
	assert.Equal(t, "", store.GetString("paging.limit"), "wrong type reads as empty")
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("chat.top_k", 5))
	require.NoError(t, store.Set("api.llm_url", "http://llm"))

	assert.Equal(t, 5, store.GetInt("chat.top_k"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))
	assert.Equal(t, 0, store.GetInt("api.llm_url"))
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.mu.Lock()
	store.data["paging.limit"] = int64(120)
	store.mu.Unlock()

	assert.Equal(t, 120, store.GetInt("paging.limit"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("api.embed_url", "http://embed:8000"))
	require.NoError(t, store1.Set("api.timeout", "5s"))
	require.NoError(t, store1.Set("paging.limit", 40))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[paging]")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://embed:8000", store2.GetString("api.embed_url"))
	assert.Equal(t, "5s", store2.GetString("api.timeout"))
	assert.Equal(t, 40, store2.GetInt("paging.limit"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("[api]\nllm_url = \"http://llm:9000\"\n\n[chat]\ntop_k = 7\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://llm:9000", store.GetString("api.llm_url"))
	assert.Equal(t, 7, store.GetInt("chat.top_k"))
	assert.Equal(t, []string{"api.llm_url", "chat.top_k"}, store.Keys())
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("toast.duration", "2s"))
	require.NoError(t, store.Set("api.embed_url", "http://a"))
	require.NoError(t, store.Set("chat.top_k", 3))

	assert.Equal(t, []string{"api.embed_url", "chat.top_k", "toast.duration"}, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("log.file", "/tmp/ragdesk.log"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# nothing\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.Keys()
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"api.embed_url": "http://a",
		"api.llm_url":   "http://b",
		"plain":         1,
	})

	api, ok := nested["api"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http://a", api["embed_url"])
	assert.Equal(t, "http://b", api["llm_url"])
	assert.Equal(t, 1, nested["plain"])
}

func TestNestMap_ValueAndTableClash(t *testing.T) {
	nested := nestMap(map[string]any{
		"api":           "scalar",
		"api.embed_url": "http://a",
	})

	assert.Equal(t, "scalar", nested["api"])
	assert.Equal(t, "http://a", nested["api.embed_url"])
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"api":  map[string]any{"timeout": "1s"},
		"root": true,
	}, "")

	assert.Equal(t, map[string]any{"api.timeout": "1s", "root": true}, flat)
}
