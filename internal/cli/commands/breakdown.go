package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/injaz-app/injaz/internal/backend"
	"github.com/injaz-app/injaz/internal/finance"
	"github.com/injaz-app/injaz/pkg/core"
)

// BreakdownOptions holds options for the breakdown command.
type BreakdownOptions struct {
	Project string
	File    string

	Funding        string
	Total          string
	Bank           string
	DesignPct      float64
	SupervisionPct float64
	Output         string
}

// NewBreakdownCommand creates the breakdown command.
func NewBreakdownCommand() *cobra.Command {
	opts := &BreakdownOptions{}

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Decompose a contract into its financial breakdown",
		Long: `Decompose a contract value into the total, bank-share and owner-share
views with inclusive fee extraction and VAT figures.

The contract comes from a running server (--project), a JSON file
(--file) or the value flags. Amount flags tolerate currency noise like
"1,210,000 AED".`,
		Example: `  # Breakdown of the contract saved for a project
  injaz breakdown --project 1b9f...

  # Breakdown of a contract payload captured to a file
  injaz breakdown --file contract.json -o json

  # Ad-hoc breakdown: 10% owner fee inclusive in 121,000
  injaz breakdown --total 121000 --funding private --design-pct 6 --supervision-pct 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBreakdown(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", "", "Project id to fetch from the server")
	cmd.Flags().StringVar(&opts.File, "file", "", "Path to a contract JSON payload")
	cmd.Flags().StringVar(&opts.Funding, "funding", "private_funding", "Funding classification (housing_loan_program|private_funding)")
	cmd.Flags().StringVar(&opts.Total, "total", "", "Gross contract value")
	cmd.Flags().StringVar(&opts.Bank, "bank", "", "Gross bank share (housing loan program only)")
	cmd.Flags().Float64Var(&opts.DesignPct, "design-pct", 0, "Owner design fee percentage")
	cmd.Flags().Float64Var(&opts.SupervisionPct, "supervision-pct", 0, "Owner supervision fee percentage")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "table", "Output format (table|json)")

	return cmd
}

func runBreakdown(cmd *cobra.Command, opts *BreakdownOptions) error {
	cfg := ConfigFrom(cmd.Context())

	var (
		b   *finance.Breakdown
		err error
	)
	switch {
	case opts.Project != "":
		client := backend.New(cfg.BackendURL)
		recs, cerr := client.ListContracts(cmd.Context(), opts.Project)
		if cerr != nil {
			return cerr
		}
		if len(recs) == 0 {
			return fmt.Errorf("no contract saved for project %s", opts.Project)
		}
		b, err = finance.Compute(recs[0])

	case opts.File != "":
		data, rerr := os.ReadFile(opts.File)
		if rerr != nil {
			return rerr
		}
		var raw map[string]any
		if jerr := json.Unmarshal(data, &raw); jerr != nil {
			return fmt.Errorf("invalid contract payload: %w", jerr)
		}
		b, err = finance.ComputeRaw(raw)

	default:
		if opts.Total == "" {
			return fmt.Errorf("one of --project, --file or --total is required")
		}
		rec := &core.ContractRecord{
			Classification: core.FundingClassification(opts.Funding),
			GrossTotal:     finance.ParseAmount(opts.Total),
			GrossBank:      finance.ParseAmount(opts.Bank),
			OwnerFees: core.ShareFees{
				HasFee:         opts.DesignPct > 0 || opts.SupervisionPct > 0,
				DesignPct:      opts.DesignPct,
				SupervisionPct: opts.SupervisionPct,
			},
		}
		rec.NormalizeFunding()
		b, err = finance.Compute(rec)
	}
	if err != nil {
		return err
	}

	return renderBreakdown(cmd, b, opts.Output)
}

func renderBreakdown(cmd *cobra.Command, b *finance.Breakdown, format string) error {
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Share", "Rate %", "Gross", "Fee", "Net", "Net incl. VAT"})
	for _, row := range []struct {
		name  string
		share finance.ShareBreakdown
	}{
		{"total", b.Total},
		{"bank", b.Bank},
		{"owner", b.Owner},
	} {
		t.AppendRow(table.Row{
			row.name,
			fmt.Sprintf("%.2f", row.share.Rate),
			fmt.Sprintf("%.0f", row.share.Gross),
			fmt.Sprintf("%.0f", row.share.Fee),
			fmt.Sprintf("%.0f", row.share.Net),
			fmt.Sprintf("%.2f", row.share.NetInclusive),
		})
	}
	t.Render()

	if b.OwnerExtraFixed > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Owner fixed extra fee: %.0f (not decomposed)\n", b.OwnerExtraFixed)
	}
	if b.BankExtraFixed > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Bank fixed extra fee: %.0f (not decomposed)\n", b.BankExtraFixed)
	}
	return nil
}
