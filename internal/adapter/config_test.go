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

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfigFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 100, cfg.Catalog.MaxLimit)
	assert.True(t, cfg.Catalog.Fields)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.StoreDir())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
catalog:
  url: http://localhost:9000/artworks
  timeout: 5s
  max_limit: 0
store:
  persist: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/artworks", cfg.Catalog.URL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 0, cfg.Catalog.MaxLimit)
	assert.Equal(t, "", cfg.StoreDir(), "persist=false means memory only")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GALLERY_CATALOG_URL", "http://env.example/artworks")
	t.Setenv("GALLERY_CATALOG_MAX_LIMIT", "25")

	cfg, err := LoadConfigFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/artworks", cfg.Catalog.URL)
	assert.Equal(t, 25, cfg.Catalog.MaxLimit)
}

func TestLoadConfig_APIURLAlias(t *testing.T) {
	t.Setenv("GALLERY_API_URL", "http://alias.example/artworks")

	cfg, err := LoadConfigFrom(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://alias.example/artworks", cfg.Catalog.URL)
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog: [unclosed"), 0644))

	_, err := LoadConfigFrom(viper.New(), dir)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.URL = "  "
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Catalog.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Catalog.MaxLimit = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Catalog.Concurrency = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Catalog.Concurrency)
}
