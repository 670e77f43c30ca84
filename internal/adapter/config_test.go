package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, SourceTypeITunes, cfg.Catalog.Type)
	assert.Equal(t, "https://itunes.apple.com", cfg.Catalog.URL)
	assert.Equal(t, 25, cfg.Catalog.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.Debounce)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Catalog.PageSize)
	assert.Equal(t, "", cfg.Catalog.Media, "\"all\" is normalized to no filter")
}

func TestLoadConfigFrom_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
catalog:
  page_size: 50
  country: gb
  media: music
  timeout: 5s
ui:
  grid_columns: 4
  debounce: 150ms
history:
  path: ""
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Catalog.PageSize)
	assert.Equal(t, "gb", cfg.Catalog.Country)
	assert.Equal(t, "music", cfg.Catalog.Media)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 4, cfg.UI.GridColumns)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.Debounce)
	assert.Equal(t, "", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://itunes.apple.com", cfg.Catalog.URL, "unset keys keep defaults")
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	t.Setenv("TUNES_CATALOG_COUNTRY", "jp")
	t.Setenv("TUNES_CATALOG_PAGE_SIZE", "10")

	cfg, err := LoadConfigFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "jp", cfg.Catalog.Country)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
}

func TestLoadConfigFrom_Normalizes(t *testing.T) {
	dir := t.TempDir()
	yaml := "catalog:\n  page_size: 900\nui:\n  grid_columns: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Catalog.PageSize)
	assert.Equal(t, 1, cfg.UI.GridColumns)
}

func TestLoadConfigFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [unclosed"), 0644))

	_, err := LoadConfigFrom(viper.New(), dir)
	assert.Error(t, err)
}

func TestSaveConfigTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Catalog.Country = "de"
	cfg.UI.GridColumns = 5
	cfg.Player.Command = "mpv"

	require.NoError(t, SaveConfigTo(cfg, dir))

	loaded, err := LoadConfigFrom(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "de", loaded.Catalog.Country)
	assert.Equal(t, 5, loaded.UI.GridColumns)
	assert.Equal(t, "mpv", loaded.Player.Command)
	assert.Equal(t, cfg.Catalog.Timeout, loaded.Catalog.Timeout)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/x/y.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x/y.log"), got)

	got, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tunes.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLogLevel("debug").String())
	assert.Equal(t, "WARN", ParseLogLevel("warning").String())
	assert.Equal(t, "INFO", ParseLogLevel("nonsense").String())
}
