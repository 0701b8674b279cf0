package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[dataset]
source = "sqlite"
db = "/var/lib/cityfinder/cities.db"
watch = true

[search]
debounce_ms = 300
nearest_count = 4
`

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))
}

func TestNewConfigStore_MissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())
	_, ok := store.Get("dataset.source")
	assert.False(t, ok)
}

func TestNewConfigStore_DefaultDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())
}

func TestDefaultDir_Home(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cityfinder"), dir)
}

func TestConfigStore_LoadNestedTables(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, sampleConfig)

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store.GetString("dataset.source"))
	assert.Equal(t, "/var/lib/cityfinder/cities.db", store.GetString("dataset.db"))
	assert.True(t, store.GetBool("dataset.watch"))
	assert.Equal(t, 300, store.GetInt("search.debounce_ms"))
	assert.Equal(t, 4, store.GetInt("search.nearest_count"))
	assert.Zero(t, store.GetInt("dataset.source"))
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[dataset\nsource = ")

	_, err := NewConfigStore(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFileName)
}

func TestConfigStore_SetPersistsNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cfg")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.source", "http"))
	require.NoError(t, store.Set("dataset.url", "https://example.com/cities.json"))
	require.NoError(t, store.Set("search.debounce_ms", int64(750)))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[dataset]")
	assert.Contains(t, string(raw), "[search]")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http", reloaded.GetString("dataset.source"))
	assert.Equal(t, "https://example.com/cities.json", reloaded.GetString("dataset.url"))
	assert.Equal(t, 750, reloaded.GetInt("search.debounce_ms"))
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"dataset": map[string]any{"source": "file", "path": "/x.json"},
		"top":     "level",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"dataset.source": "file",
		"dataset.path":   "/x.json",
		"top":            "level",
	}, flat)

	assert.Equal(t, nested, nestMap(flat))
}
