package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/injaz-app/injaz/internal/aggregate"
	"github.com/injaz-app/injaz/internal/backend"
	"github.com/injaz-app/injaz/internal/i18n"
	"github.com/injaz-app/injaz/internal/wizard"
	"github.com/injaz-app/injaz/pkg/core"
)

// StepsOptions holds options for the steps command.
type StepsOptions struct {
	Project       string
	ProjectType   string
	VillaCategory string
	ContractType  string
	Funding       string
	Locale        string
	Output        string
}

// NewStepsCommand creates the steps command.
func NewStepsCommand() *cobra.Command {
	opts := &StepsOptions{}

	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Resolve the wizard step graph",
		Long: `Resolve the dynamic wizard step graph.

With --project the project and its records are fetched from a running
server and the resolved graph includes lock and completion state. With
classification flags the graph is resolved locally.`,
		Example: `  # Resolve the graph for a saved project
  injaz steps --project 1b9f... --backend-url http://localhost:8640

  # Resolve the graph for a hypothetical classification
  injaz steps --project-type villa --villa-category residential --contract-type new

  # The same graph with the award step removed
  injaz steps --project-type villa --villa-category residential --contract-type new --funding private`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSteps(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", "", "Project id to fetch from the server")
	cmd.Flags().StringVar(&opts.ProjectType, "project-type", "", "Project type (villa|commercial|maintenance|governmental|fitout)")
	cmd.Flags().StringVar(&opts.VillaCategory, "villa-category", "", "Villa category (residential|commercial)")
	cmd.Flags().StringVar(&opts.ContractType, "contract-type", "", "Contract type (new|continue)")
	cmd.Flags().StringVar(&opts.Funding, "funding", "", "Funding path (bank|private)")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "Locale for step titles (ar|en)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "table", "Output format (table|json)")

	return cmd
}

func runSteps(cmd *cobra.Command, opts *StepsOptions) error {
	cfg := ConfigFrom(cmd.Context())

	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("failed to load locales: %w", err)
	}
	locale := opts.Locale
	if locale == "" {
		locale = cfg.DefaultLocale
	}

	var states []wizard.StepState
	if opts.Project != "" {
		client := backend.New(cfg.BackendURL)
		snap, err := aggregate.Fetch(cmd.Context(), client, opts.Project, newLogger(cfg.Verbose))
		if err != nil {
			return err
		}
		ws := wizard.NewSession(opts.Project)
		ws.Apply(snap)
		states = ws.Steps()
	} else {
		class := core.Classification{
			ProjectType:   core.ProjectType(opts.ProjectType),
			VillaCategory: core.VillaCategory(opts.VillaCategory),
			ContractType:  core.ContractType(opts.ContractType),
		}
		path := wizard.FundingUnknown
		switch opts.Funding {
		case "":
		case "bank":
			path = wizard.FundingBank
		case "private":
			path = wizard.FundingPrivate
		default:
			return fmt.Errorf("unknown funding path: %s", opts.Funding)
		}
		for i, d := range wizard.ResolveSteps(class, path) {
			states = append(states, wizard.StepState{
				StepDescriptor: d,
				Active:         i == 0,
				Locked:         !wizard.CanEnter(i, class),
				Mode:           wizard.ModeView,
			})
		}
	}

	return renderSteps(cmd, bundle, locale, states, opts.Output)
}

func renderSteps(cmd *cobra.Command, bundle *i18n.Bundle, locale string, states []wizard.StepState, format string) error {
	if format == "json" {
		type stepView struct {
			wizard.StepState
			Title string `json:"title"`
		}
		views := make([]stepView, len(states))
		for i, st := range states {
			views[i] = stepView{StepState: st, Title: bundle.StepTitle(locale, st.ID)}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Step", "Title", "Locked", "Completed", "Active"})
	for _, st := range states {
		t.AppendRow(table.Row{
			st.Ordinal + 1,
			string(st.ID),
			bundle.StepTitle(locale, st.ID),
			st.Locked,
			st.Completed,
			st.Active,
		})
	}
	t.Render()
	return nil
}
