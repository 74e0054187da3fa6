package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecooper/dp-headlines/internal/extractor"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://www.thedp.com", cfg.SiteURL)
	assert.Equal(t, extractor.VariantMostRead, cfg.Variant)
	assert.Equal(t, filepath.Join("data", "daily_pennsylvanian_headlines.json"), cfg.DataPath())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
site_url: https://news.example.com
variant: featured
data_dir: /var/lib/dph
timeout_seconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://news.example.com", cfg.SiteURL)
	assert.Equal(t, "featured", cfg.Variant)
	assert.Equal(t, "/var/lib/dph", cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	// untouched keys keep their defaults
	assert.Equal(t, "daily_pennsylvanian_headlines.json", cfg.DataFile)
	assert.Equal(t, "scrape.log", cfg.LogFile)
}

func TestLoadMissingExplicitFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DPH_VARIANT", "rss")
	t.Setenv("DPH_FEED_URL", "https://news.example.com/rss")
	t.Setenv("DPH_TIMEOUT_SECONDS", "20")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "rss", cfg.Variant)
	assert.Equal(t, "https://news.example.com/rss", cfg.FeedURL)
	assert.Equal(t, 20*time.Second, cfg.Timeout())
}

func TestEnvOverridesBeatYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: featured\n"), 0644))
	t.Setenv("DPH_VARIANT", "mostread")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mostread", cfg.Variant)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"featured variant", func(c *Config) { c.Variant = "featured" }, false},
		{"rss variant", func(c *Config) { c.Variant = "rss" }, false},
		{"unknown variant", func(c *Config) { c.Variant = "headline" }, true},
		{"empty site url", func(c *Config) { c.SiteURL = "" }, true},
		{"rss without feed url", func(c *Config) { c.Variant = "rss"; c.FeedURL = "" }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
