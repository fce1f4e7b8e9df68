package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 8080
	cfg.Polling.IntervalMinutes = 60
	cfg.Sources = []Source{
		{University: "Yale University", URL: "https://news.yale.edu/news-rss"},
	}
	cfg.Structuring.Enabled = true
	cfg.Structuring.CallBudget = 5
	cfg.Structuring.Model = "gemini-2.5-flash"
	return cfg
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := validConfig()
	cfg.Sources = append(cfg.Sources, Source{
		University: "  Yale University  ",
		URL:        " https://news.yale.edu/news-rss ",
	})

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK(), "errors: %v", vr.Errors)
	require.Len(t, out.Sources, 1, "duplicate url dropped")
	require.NotEmpty(t, vr.Warnings)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sources", func(c *Config) { c.Sources = nil }},
		{"bad url", func(c *Config) { c.Sources[0].URL = "not a url" }},
		{"zero port", func(c *Config) { c.App.Port = 0 }},
		{"budget zero with structuring on", func(c *Config) { c.Structuring.CallBudget = 0 }},
		{"negative feed rate", func(c *Config) { c.Feeds.RequestsPerSecond = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			_, vr := NormalizeAndValidate(cfg)
			require.False(t, vr.OK())
		})
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := validConfig()
	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Sources, loaded.Sources)
	require.Equal(t, 5, loaded.Structuring.CallBudget)

	// Second save keeps a .bak of the previous file.
	cfg.App.Port = 9090
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	require.NoError(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(def, []byte("app:\n  port: 8080\n"), 0o644))

	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	got, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "config.yml"), got)

	// Existing user config is not clobbered.
	require.NoError(t, os.WriteFile(got, []byte("app:\n  port: 1234\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	cfg, err := Load(again)
	require.NoError(t, err)
	require.Equal(t, 1234, cfg.App.Port)
}

func TestDurationDefaults(t *testing.T) {
	var cfg Config
	require.Equal(t, time.Hour, cfg.PollInterval())
	cfg.Polling.IntervalMinutes = 15
	require.Equal(t, 15*time.Minute, cfg.PollInterval())
	require.Equal(t, time.Duration(0), cfg.Backoff())
	cfg.Structuring.BackoffSeconds = 5
	require.Equal(t, 5*time.Second, cfg.Backoff())
	require.Equal(t, 1.0, cfg.FeedRate())
	cfg.Feeds.RequestsPerSecond = 0.5
	require.Equal(t, 0.5, cfg.FeedRate())
}
