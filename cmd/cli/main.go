package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	domainDataset "goscores/domain/dataset"
	"goscores/internal/analysis"
	"goscores/internal/config"
	"goscores/internal/dataset"
	"goscores/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	source string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "goscores-cli",
		Short:         "Query the student performance dashboard from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.source, "source", "", "Dataset source (file path, URL, postgres:// DSN or synthetic://N?seed=S); overrides DATASET_SOURCE")

	rootCmd.AddCommand(
		newSummaryCmd(opts),
		newOptionsCmd(opts),
		newCorrelationCmd(opts),
		newReportCmd(opts),
	)
	return rootCmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	sel := domainDataset.DefaultSelection()
	var group string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard snapshot for a selection as JSON",
		Long: `Compute every dashboard aggregate for one selection.

Example: goscores-cli summary --prep completed --gender male --group "group C"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), opts)
			if err != nil {
				return err
			}
			sel.Group = parseGroup(group)
			return writeJSON(cmd.OutOrStdout(), analysis.Compute(ds, sel))
		},
	}

	addSelectionFlags(cmd, &sel, &group)
	return cmd
}

func newOptionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the filter domains and the default selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"domains": ds.Domains(),
				"groups":  domainDataset.GroupMappings(),
				"default": domainDataset.DefaultSelection(),
				"dataset": ds.Info(),
			})
		},
	}
}

func newCorrelationCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "correlation",
		Short: "Print the score correlation matrix over the whole dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis.Correlate(ds))
		},
	}
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	sel := domainDataset.DefaultSelection()
	var group string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a markdown summary for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), opts)
			if err != nil {
				return err
			}
			sel.Group = parseGroup(group)
			_, err = io.WriteString(cmd.OutOrStdout(), report.Markdown(ds.Info(), analysis.Compute(ds, sel)))
			return err
		},
	}

	addSelectionFlags(cmd, &sel, &group)
	return cmd
}

func addSelectionFlags(cmd *cobra.Command, sel *domainDataset.Selection, group *string) {
	cmd.Flags().StringVar(&sel.Prep, "prep", sel.Prep, "Test preparation course value")
	cmd.Flags().StringVar(&sel.Gender, "gender", sel.Gender, "Gender value")
	cmd.Flags().StringVar(group, "group", string(sel.Group), "Group label or raw code (group A..group E)")
}

func parseGroup(value string) domainDataset.Group {
	if label, ok := domainDataset.GroupForCode(value); ok {
		return label
	}
	return domainDataset.Group(value)
}

func loadDataset(ctx context.Context, opts *rootOptions) (*domainDataset.Dataset, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.source != "" {
		cfg.Dataset.Source = opts.source
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return dataset.Load(ctx, cfg.Dataset)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
