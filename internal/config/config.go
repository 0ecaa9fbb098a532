// Package config loads Injaz configuration from defaults, an optional
// yaml file, environment variables and CLI flags, in ascending
// precedence.
package config

import "fmt"

// Config is the resolved application configuration.
type Config struct {
	// ListenAddr is the API server bind address.
	ListenAddr string `koanf:"listen_addr"`

	// DatabasePath is the SQLite database location. ":memory:" runs
	// without persistence.
	DatabasePath string `koanf:"database"`

	// SessionSecret signs the wizard session cookies.
	SessionSecret string `koanf:"session_secret"`

	// BackendURL points the CLI client commands at a running server.
	BackendURL string `koanf:"backend_url"`

	// DefaultLocale is used when language negotiation fails.
	DefaultLocale string `koanf:"default_locale"`

	// LocalesDir optionally overrides the embedded message bundles.
	LocalesDir string `koanf:"locales_dir"`

	// WatchLocales reloads override bundles on change (dev mode).
	WatchLocales bool `koanf:"watch_locales"`

	Verbose bool `koanf:"verbose"`
}

// Validate checks fields whose zero value is not acceptable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database is required")
	}
	if c.DefaultLocale != "ar" && c.DefaultLocale != "en" {
		return fmt.Errorf("default_locale must be ar or en, got %q", c.DefaultLocale)
	}
	return nil
}
