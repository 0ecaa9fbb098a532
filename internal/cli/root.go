// Package cli provides the command-line interface for Injaz.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/injaz-app/injaz/internal/cli/commands"
	"github.com/injaz-app/injaz/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "injaz",
		Short: "Injaz - Construction Project Intake Service",
		Long: `Injaz is a bilingual data-entry service for construction projects.

It serves the project intake wizard over a JSON API: project
classification, the dynamic step graph (site plan, building license,
contract, bank awarding) and the contract financial breakdown with
inclusive fee decomposition.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))

			if cfg.Verbose && cfgFile != "" {
				fmt.Fprintf(os.Stderr, "Using config file: %s\n", cfgFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Construction project intake built with Go and SQLite
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./injaz.yaml)")
	rootCmd.PersistentFlags().String("listen-addr", "", "API server bind address")
	rootCmd.PersistentFlags().String("database", "", "Path to SQLite database (\":memory:\" for none)")
	rootCmd.PersistentFlags().String("session-secret", "", "Secret signing the wizard session cookies")
	rootCmd.PersistentFlags().String("backend-url", "", "Base URL of a running server for client commands")
	rootCmd.PersistentFlags().String("default-locale", "", "Fallback locale (ar|en)")
	rootCmd.PersistentFlags().String("locales-dir", "", "Directory of locale override files")
	rootCmd.PersistentFlags().Bool("watch-locales", false, "Reload locale overrides on change")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("default-locale", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ar", "en"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewStepsCommand())
	rootCmd.AddCommand(commands.NewBreakdownCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for Injaz.

To load completions:

Bash:
  $ source <(injaz completion bash)

Zsh:
  $ injaz completion zsh > "${fpath[1]}/_injaz"

Fish:
  $ injaz completion fish | source

PowerShell:
  PS> injaz completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
