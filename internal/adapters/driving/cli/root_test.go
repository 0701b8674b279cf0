package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cityfinder/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/logger"
)

// testCities lie on the equator at uneven spacing so no two distances tie.
const testCities = `[
  {"id": "1", "name": "Alpha", "country": "AA", "lat": 0, "lng": 0},
  {"id": "2", "name": "Bravo", "country": "BB", "lat": "0", "lng": "1"},
  {"id": "3", "name": "Charlie", "country": "CC", "lat": 0, "lng": 2.5},
  {"id": "4", "name": "Delta", "country": "DD", "lat": 0, "lng": 4},
  {"id": "5", "name": "Echo", "country": "EE", "lat": 0, "lng": 10},
  {"id": "6", "name": "Foxtrot", "country": "FF", "lat": 0, "lng": 30}
]`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// resetFlags restores every package-level flag variable and wiring global.
func resetFlags() {
	configDir = ""
	verbose = false
	datasetPath = ""
	datasetURL = ""
	datasetDB = ""
	searchLimit = 10
	searchJSON = false
	nearestJSON = false
	tuiWatch = false
	settings = domain.Settings{}
	SetServices(nil)
	logger.SetVerbose(false)
	logger.SetOutput(os.Stderr)
}

// setupTestServices wires real services over an in-memory config that
// points at a temporary copy of testCities.
func setupTestServices(t *testing.T) *Services {
	t.Helper()
	return setupTestServicesWith(t, testCities)
}

// setupTestServicesWith is setupTestServices for a custom dataset.
func setupTestServicesWith(t *testing.T, dataset string) *Services {
	t.Helper()
	store := memory.NewConfigStore(map[string]any{
		"dataset.source": "file",
		"dataset.path":   writeDataset(t, dataset),
	})
	s, _, err := NewServices(store, nil)
	require.NoError(t, err)

	SetServices(s)
	t.Cleanup(resetFlags)
	return s
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	color.NoColor = true
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "cityfinder", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose", "dataset", "url", "db"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_WithoutTerminalPrintsHelp(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t)

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands")
	assert.Contains(t, out, "search")
}

func TestSetup_ReadsConfigDir(t *testing.T) {
	t.Cleanup(resetFlags)
	dir := t.TempDir()
	dataset := writeDataset(t, testCities)
	cfg := "[dataset]\nsource = \"file\"\npath = \"" + filepath.ToSlash(dataset) + "\"\n\n[search]\nnearest_count = 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, file.ConfigFileName), []byte(cfg), 0600))

	_, err := execute(t, "--config", dir, "version")

	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, domain.DatasetSourceFile, settings.Dataset.Source)
	assert.Equal(t, dataset, settings.Dataset.Path)
	assert.Equal(t, 2, settings.Search.NearestCount)
	assert.Equal(t, "file:"+dataset, svc.Dataset.Source())
}

func TestSetup_FlagOverridesConfig(t *testing.T) {
	t.Cleanup(resetFlags)
	dir := t.TempDir()
	dataset := writeDataset(t, testCities)

	_, err := execute(t, "--config", dir, "--dataset", dataset, "version")

	require.NoError(t, err)
	assert.Equal(t, domain.DatasetSourceFile, settings.Dataset.Source)
	assert.Equal(t, dataset, settings.Dataset.Path)
}

func TestSetup_InvalidConfigFails(t *testing.T) {
	t.Cleanup(resetFlags)
	dir := t.TempDir()
	cfg := "[dataset]\nsource = \"carrier-pigeon\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, file.ConfigFileName), []byte(cfg), 0600))

	_, err := execute(t, "--config", dir, "version")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSetup_LogFile(t *testing.T) {
	t.Cleanup(resetFlags)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "cityfinder.log")
	cfg := "[log]\nfile = \"" + filepath.ToSlash(logPath) + "\"\nverbose = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, file.ConfigFileName), []byte(cfg), 0600))

	_, err := execute(t, "--config", dir, "version")

	require.NoError(t, err)
	assert.Nil(t, closeLog, "log file is closed after the command")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] Config:")
}

func TestOverrides(t *testing.T) {
	t.Cleanup(resetFlags)

	s := domain.DefaultSettings()
	assert.False(t, overrides(&s))
	assert.Equal(t, domain.DatasetSourceEmbedded, s.Dataset.Source)

	datasetURL = "http://example.test/cities.json"
	datasetDB = "/tmp/cities.db"
	assert.True(t, overrides(&s))
	assert.Equal(t, domain.DatasetSourceSQLite, s.Dataset.Source)
	assert.Equal(t, "http://example.test/cities.json", s.Dataset.URL)
	assert.Equal(t, "/tmp/cities.db", s.Dataset.DB)
}

func TestNewServices_Defaults(t *testing.T) {
	s, resolved, err := NewServices(memory.NewConfigStore(), nil)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), resolved)
	assert.Equal(t, "embedded", s.Dataset.Source())
	assert.Equal(t, domain.DefaultDebounce, s.Debouncer.Delay())
	assert.Equal(t, ":memory:", s.ConfigPath)
}

func TestNewServices_OverrideFixesInvalidConfig(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"dataset.source": "file"})

	_, _, err := NewServices(store, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	s, resolved, err := NewServices(store, func(s *domain.Settings) bool {
		s.Dataset.Path = "cities.json"
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "cities.json", resolved.Dataset.Path)
	assert.Equal(t, "file:cities.json", s.Dataset.Source())
}

func TestRequireServices(t *testing.T) {
	t.Cleanup(resetFlags)
	SetServices(nil)
	assert.ErrorIs(t, requireServices(), domain.ErrInvalidInput)

	setupTestServices(t)
	assert.NoError(t, requireServices())
}
