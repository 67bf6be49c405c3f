package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// fileSettings is the on-disk YAML shape. Every field is optional; zero
// values fall back to the built-in defaults.
type fileSettings struct {
	BaseURL string `yaml:"base_url"`
	DBPath  string `yaml:"db_path"`

	HTTPTimeoutMS int `yaml:"http_timeout_ms"`
	DebounceMS    int `yaml:"debounce_ms"`

	Categories        []string `yaml:"categories"`
	CategoryAttempts  int      `yaml:"category_attempts"`
	CategoryRetryMS   int      `yaml:"category_retry_ms"`

	ProbeAttempts   int `yaml:"probe_attempts"`
	ProbeIntervalMS int `yaml:"probe_interval_ms"`
	ProbeTimeoutMS  int `yaml:"probe_timeout_ms"`
	SettleMS        int `yaml:"settle_ms"`
}

// Load reads <home>/config.yaml from the given filesystem and merges it
// over the defaults. A missing file is not an error; a malformed one is.
func Load(fs afero.Fs, home string) (*AppConfig, error) {
	cfg := Default(home)

	path := filepath.Join(home, "config.yaml")
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("stat config failed: %w", err)
	}
	if !exists {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var s fileSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config failed: %w", err)
	}

	if s.BaseURL != "" {
		cfg.baseURL = s.BaseURL
	}
	if s.DBPath != "" {
		cfg.dbPath = s.DBPath
	}
	if s.HTTPTimeoutMS > 0 {
		cfg.httpTimeout = time.Duration(s.HTTPTimeoutMS) * time.Millisecond
	}
	if s.DebounceMS > 0 {
		cfg.debounceDelay = time.Duration(s.DebounceMS) * time.Millisecond
	}
	if len(s.Categories) > 0 {
		cfg.categoryTypes = s.Categories
	}
	if s.CategoryAttempts > 0 {
		cfg.categoryAttempts = s.CategoryAttempts
	}
	if s.CategoryRetryMS > 0 {
		cfg.categoryRetryDelay = time.Duration(s.CategoryRetryMS) * time.Millisecond
	}
	if s.ProbeAttempts > 0 {
		cfg.probeAttempts = s.ProbeAttempts
	}
	if s.ProbeIntervalMS > 0 {
		cfg.probeInterval = time.Duration(s.ProbeIntervalMS) * time.Millisecond
	}
	if s.ProbeTimeoutMS > 0 {
		cfg.probeTimeout = time.Duration(s.ProbeTimeoutMS) * time.Millisecond
	}
	if s.SettleMS > 0 {
		cfg.settleDelay = time.Duration(s.SettleMS) * time.Millisecond
	}

	return cfg, nil
}
