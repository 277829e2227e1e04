package main

import (
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/piwi3910/YardCut/cmd/yardcut/options"
	"github.com/piwi3910/YardCut/internal/engine"
)

func newBatchCommand(opts *options.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Pack several datasets at several fabric widths concurrently",
		Example: `  yardcut batch
  yardcut batch -d couch-1 -d couch-2 -w 56 -w 60 --workers 4 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := complete(cmd, opts); err != nil {
				return err
			}
			names := opts.Datasets
			if len(names) == 0 {
				names = opts.Store.Names()
			}
			tables, err := resolveTables(opts.Store, names)
			if err != nil {
				return err
			}

			jobs := engine.BatchJobs(tables, opts.Settings.FabricWidths)
			klog.FromContext(cmd.Context()).V(2).Info("Starting batch",
				"datasets", len(tables), "widths", len(opts.Settings.FabricWidths), "workers", opts.Workers)

			comparisons, err := engine.New(opts.Settings).RunBatch(cmd.Context(), jobs, opts.Workers)
			if err != nil {
				return err
			}
			if err := writeReport(cmd, opts, comparisons); err != nil {
				return err
			}
			return runExports(cmd, opts, comparisons)
		},
	}

	opts.AddBatchFlags(cmd.Flags())
	opts.AddCalculationFlags(cmd.Flags())
	opts.AddExportFlags(cmd.Flags())
	return cmd
}
