package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/injaz-app/injaz/internal/api"
	"github.com/injaz-app/injaz/internal/i18n"
	"github.com/injaz-app/injaz/internal/state"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Injaz API server",
		Long: `Start the JSON API server.

The server exposes project CRUD, the dependent records (site plan,
license, contract, awarding), the resolved wizard step graph, the
contract financial breakdown and a change-event stream.`,
		Example: `  # Serve on the default address with the default database
  injaz serve

  # Serve on a custom address with locale overrides reloaded live
  injaz serve --listen-addr :9000 --locales-dir ./locales --watch-locales`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := ConfigFrom(cmd.Context())
	logger := newLogger(cfg.Verbose)

	store, err := state.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("failed to load locales: %w", err)
	}
	if cfg.LocalesDir != "" {
		if err := bundle.LoadOverrides(cfg.LocalesDir); err != nil {
			return fmt.Errorf("failed to load locale overrides: %w", err)
		}
	}

	srv := api.NewServer(api.Config{
		Store:         store,
		Bundle:        bundle,
		Addr:          cfg.ListenAddr,
		SessionSecret: cfg.SessionSecret,
		Logger:        logger,
		LocalesDir:    cfg.LocalesDir,
		WatchLocales:  cfg.WatchLocales,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
