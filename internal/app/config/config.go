// Package config holds the client configuration: where the remote service
// lives, how patient the HTTP layer is, and the knobs of the sync core
// (debounce delay, retry counts, reconnection poll spacing).
package config

import (
	"path/filepath"
	"time"
)

// Config provides read-only access to client configuration.
type Config interface {
	Home() string    // Base directory for brickshop state (BRICKSHOP_HOME)
	BaseURL() string // Remote service base URL
	DBPath() string  // SQLite cache file path

	HTTPTimeout() time.Duration // Connect/read timeout for real requests

	DebounceDelay() time.Duration // Toggle debounce window

	CategoryTypes() []string // Catalog categories refreshed at startup
	CategoryAttempts() int   // Fetch attempts per category
	CategoryRetryDelay() time.Duration

	ProbeAttempts() int           // Reconnection poll attempts
	ProbeInterval() time.Duration // Spacing between probes
	ProbeTimeout() time.Duration  // Per-probe timeout
	SettleDelay() time.Duration   // Delay between CONNECTING and CONNECTED
}

// AppConfig is the concrete implementation of Config.
type AppConfig struct {
	home    string
	baseURL string
	dbPath  string

	httpTimeout   time.Duration
	debounceDelay time.Duration

	categoryTypes      []string
	categoryAttempts   int
	categoryRetryDelay time.Duration

	probeAttempts int
	probeInterval time.Duration
	probeTimeout  time.Duration
	settleDelay   time.Duration
}

func (c *AppConfig) Home() string                      { return c.home }
func (c *AppConfig) BaseURL() string                   { return c.baseURL }
func (c *AppConfig) DBPath() string                    { return c.dbPath }
func (c *AppConfig) HTTPTimeout() time.Duration        { return c.httpTimeout }
func (c *AppConfig) DebounceDelay() time.Duration      { return c.debounceDelay }
func (c *AppConfig) CategoryTypes() []string           { return c.categoryTypes }
func (c *AppConfig) CategoryAttempts() int             { return c.categoryAttempts }
func (c *AppConfig) CategoryRetryDelay() time.Duration { return c.categoryRetryDelay }
func (c *AppConfig) ProbeAttempts() int                { return c.probeAttempts }
func (c *AppConfig) ProbeInterval() time.Duration      { return c.probeInterval }
func (c *AppConfig) ProbeTimeout() time.Duration       { return c.probeTimeout }
func (c *AppConfig) SettleDelay() time.Duration        { return c.settleDelay }

// Default returns the built-in configuration, used when no config file
// exists or loading fails.
func Default(home string) *AppConfig {
	return &AppConfig{
		home:               home,
		baseURL:            "https://bricks-temple-server.onrender.com",
		dbPath:             filepath.Join(home, "cache.db"),
		httpTimeout:        25 * time.Second,
		debounceDelay:      200 * time.Millisecond,
		categoryTypes:      []string{"set", "minifigure", "detail", "polybag", "other"},
		categoryAttempts:   3,
		categoryRetryDelay: 300 * time.Millisecond,
		probeAttempts:      20,
		probeInterval:      1500 * time.Millisecond,
		probeTimeout:       2 * time.Second,
		settleDelay:        500 * time.Millisecond,
	}
}
