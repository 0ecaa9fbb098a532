package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injaz-app/injaz/internal/state"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  `Apply all pending schema migrations to the configured SQLite database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())

			store, err := state.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if err := store.Migrate(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			version, err := store.MigrationVersion()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database %s at migration version %d\n", cfg.DatabasePath, version)
			return nil
		},
	}
}
