package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/injaz-app/injaz/internal/config"
)

// configKey stores the resolved configuration in the command context.
type configKey struct{}

// WithConfig attaches the configuration to a command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom retrieves the configuration from the command context,
// falling back to defaults when the root command did not load one.
func ConfigFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		ListenAddr:    config.DefaultListenAddr,
		DatabasePath:  config.DefaultDatabase,
		BackendURL:    config.DefaultBackendURL,
		DefaultLocale: config.DefaultLocale,
	}
}

// newLogger builds the process logger. Verbose mode lowers the level
// to debug.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
