package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/YardCut/cmd/yardcut/options"
	"github.com/piwi3910/YardCut/internal/model"
	"github.com/piwi3910/YardCut/internal/project"
	"github.com/piwi3910/YardCut/internal/report"
)

// NewCommand builds the yardcut command tree writing reports to out and
// diagnostics to errOut.
func NewCommand(out, errOut io.Writer) *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "yardcut",
		Short: "Estimate fabric yardage for a cut list",
		Long: `YardCut packs rectangular pieces onto a roll of fabric in shelf rows
and reports the length needed for both piece orientations at each
fabric width.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.NoColor {
				color.NoColor = true
			}
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newPackCommand(opts),
		newBatchCommand(opts),
		newDatasetsCommand(opts),
		newConfigCommand(opts),
	)
	return cmd
}

// complete runs Complete and Validate against the flags of cmd.
func complete(cmd *cobra.Command, opts *options.Options) error {
	if err := opts.Complete(cmd.Flags()); err != nil {
		return err
	}
	return opts.Validate()
}

// writeReport formats comparisons the way opts asks for.
func writeReport(cmd *cobra.Command, opts *options.Options, comparisons []model.Comparison) error {
	formatter, err := report.NewDefaultFormatter()
	if err != nil {
		return err
	}
	formatter.ShowInfeasible = opts.ShowInfeasible
	formatter.ShowBest = opts.ShowBest

	data, err := formatter.Format(cmd.Context(), comparisons, opts.Format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func warnf(w io.Writer, format string, a ...interface{}) {
	color.New(color.FgYellow).Fprintf(w, "warning: "+format+"\n", a...)
}

func notef(w io.Writer, format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(w, format+"\n", a...)
}

// resolveTables looks up each named dataset in the store.
func resolveTables(store model.DatasetStore, names []string) ([]model.PieceTable, error) {
	tables := make([]model.PieceTable, 0, len(names))
	for _, name := range names {
		d, err := project.ResolveDataset(store, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, d.Table)
	}
	return tables, nil
}
