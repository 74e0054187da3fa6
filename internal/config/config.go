// Package config assembles the job's runtime settings from defaults, an
// optional YAML file, an optional .env file, and DPH_* environment
// variables, in that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ecooper/dp-headlines/internal/extractor"
)

// Config holds the settings for one run.
type Config struct {
	SiteURL string `yaml:"site_url"`
	FeedURL string `yaml:"feed_url"`
	Variant string `yaml:"variant"`

	DataDir  string `yaml:"data_dir"`
	DataFile string `yaml:"data_file"`

	LogFile       string `yaml:"log_file"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`

	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Default returns the configuration the original deployment runs with.
func Default() *Config {
	return &Config{
		SiteURL:        "https://www.thedp.com",
		FeedURL:        "https://www.thedp.com/rss",
		Variant:        extractor.VariantMostRead,
		DataDir:        "data",
		DataFile:       "daily_pennsylvanian_headlines.json",
		LogFile:        "scrape.log",
		LogMaxSizeMB:   10,
		LogMaxBackups:  3,
		TimeoutSeconds: 10,
	}
}

// Load builds a Config: defaults, then the YAML file at path (skipped when
// path is empty; an explicitly named file must exist), then a .env file in
// the working directory if present, then DPH_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// A missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv overlays DPH_* environment variables onto the config.
func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("DPH_SITE_URL", &c.SiteURL)
	setString("DPH_FEED_URL", &c.FeedURL)
	setString("DPH_VARIANT", &c.Variant)
	setString("DPH_DATA_DIR", &c.DataDir)
	setString("DPH_DATA_FILE", &c.DataFile)
	setString("DPH_LOG_FILE", &c.LogFile)
	setInt("DPH_LOG_MAX_SIZE_MB", &c.LogMaxSizeMB)
	setInt("DPH_LOG_MAX_BACKUPS", &c.LogMaxBackups)
	setInt("DPH_TIMEOUT_SECONDS", &c.TimeoutSeconds)
}

// Validate checks the parts of the config that would otherwise fail deep
// inside a run.
func (c *Config) Validate() error {
	if _, err := extractor.New(c.Variant, c.SiteURL, c.FeedURL); err != nil {
		return err
	}
	if c.SiteURL == "" {
		return fmt.Errorf("site_url must not be empty")
	}
	if c.Variant == extractor.VariantRSS && c.FeedURL == "" {
		return fmt.Errorf("feed_url must not be empty for the rss variant")
	}
	if c.DataDir == "" || c.DataFile == "" {
		return fmt.Errorf("data_dir and data_file must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	return nil
}

// DataPath returns the backing file path for the daily event monitor.
func (c *Config) DataPath() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
