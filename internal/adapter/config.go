package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultCatalogURL is the public Art Institute of Chicago artworks endpoint
const DefaultCatalogURL = "https://api.artic.edu/api/v1/artworks"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds catalog API configuration
type CatalogConfig struct {
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxLimit    int           `mapstructure:"max_limit"`   // Largest limit the API accepts in one request (0 = no cap)
	Concurrency int           `mapstructure:"concurrency"` // Parallel requests for chunked bulk fetches
	Fields      bool          `mapstructure:"fields"`      // Ask the API for the displayed fields only
}

// StoreConfig holds selection persistence configuration
type StoreConfig struct {
	Dir     string `mapstructure:"dir"`
	Persist bool   `mapstructure:"persist"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:         DefaultCatalogURL,
			Timeout:     30 * time.Second,
			MaxLimit:    100,
			Concurrency: 4,
			Fields:      true,
		},
		Store: StoreConfig{
			Dir:     defaultStorePath(),
			Persist: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gallery", "gallery.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gallery", "gallery.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gallery")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gallery")
	}
}

// defaultStorePath returns the default selection store directory for the current OS
func defaultStorePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "gallery", "store")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gallery", "store")
	}
}

// LoadConfig loads configuration from the default locations and environment.
// v may carry flag bindings; nil uses a fresh instance.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	return LoadConfigFrom(v, defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration into v, searching paths for config.yaml.
// Environment variables (GALLERY_CATALOG_URL, GALLERY_LOGGING_LEVEL, ...) win over the file.
func LoadConfigFrom(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Defaults make every key known so AutomaticEnv applies to Unmarshal
	v.SetDefault("catalog.url", cfg.Catalog.URL)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.max_limit", cfg.Catalog.MaxLimit)
	v.SetDefault("catalog.concurrency", cfg.Catalog.Concurrency)
	v.SetDefault("catalog.fields", cfg.Catalog.Fields)
	v.SetDefault("store.dir", cfg.Store.Dir)
	v.SetDefault("store.persist", cfg.Store.Persist)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("catalog.url", "GALLERY_CATALOG_URL", "GALLERY_API_URL"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the browser unusable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return fmt.Errorf("catalog.url is required")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive (got %s)", c.Catalog.Timeout)
	}
	if c.Catalog.MaxLimit < 0 {
		return fmt.Errorf("catalog.max_limit must not be negative (got %d)", c.Catalog.MaxLimit)
	}
	if c.Catalog.Concurrency <= 0 {
		c.Catalog.Concurrency = 1
	}
	return nil
}

// StoreDir returns the selection store directory, "" for memory-only mode
func (c *Config) StoreDir() string {
	if !c.Store.Persist {
		return ""
	}
	return c.Store.Dir
}
