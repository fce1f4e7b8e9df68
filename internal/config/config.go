package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Source struct {
	University string `yaml:"university" json:"university"`
	URL        string `yaml:"url" json:"url"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Polling struct {
		IntervalMinutes int `yaml:"interval_minutes" json:"interval_minutes"`
	} `yaml:"polling" json:"polling"`

	Feeds struct {
		MaxEntriesPerSource int     `yaml:"max_entries_per_source" json:"max_entries_per_source"`
		RequestsPerSecond   float64 `yaml:"requests_per_second" json:"requests_per_second"`
	} `yaml:"feeds" json:"feeds"`

	Sources []Source `yaml:"sources" json:"sources"`

	Structuring struct {
		Enabled        bool   `yaml:"enabled" json:"enabled"`
		Model          string `yaml:"model" json:"model"`
		CallBudget     int    `yaml:"call_budget" json:"call_budget"`
		BackoffSeconds int    `yaml:"backoff_seconds" json:"backoff_seconds"`
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"structuring" json:"structuring"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) PollInterval() time.Duration {
	m := c.Polling.IntervalMinutes
	if m <= 0 {
		m = 60
	}
	return time.Duration(m) * time.Minute
}

// FeedRate is the per-host request rate for feed fetches.
func (c Config) FeedRate() float64 {
	if c.Feeds.RequestsPerSecond <= 0 {
		return 1.0
	}
	return c.Feeds.RequestsPerSecond
}

func (c Config) Backoff() time.Duration {
	s := c.Structuring.BackoffSeconds
	if s < 0 {
		s = 0
	}
	return time.Duration(s) * time.Second
}
