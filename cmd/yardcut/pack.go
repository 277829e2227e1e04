package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/piwi3910/YardCut/cmd/yardcut/options"
	"github.com/piwi3910/YardCut/internal/engine"
	"github.com/piwi3910/YardCut/internal/export"
	"github.com/piwi3910/YardCut/internal/importer"
	"github.com/piwi3910/YardCut/internal/model"
	"github.com/piwi3910/YardCut/internal/project"
)

func newPackCommand(opts *options.Options) *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "pack [FILE]",
		Short: "Pack one cut list at one or more fabric widths",
		Long: `Pack a cut list read from a CSV, Excel or DXF file, or a stored dataset,
and print the fabric needed for both orientations at each width.`,
		Example: `  yardcut pack cushions.csv --width 54 --width 60
  yardcut pack --dataset couch-3 --best --pdf couch.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := complete(cmd, opts); err != nil {
				return err
			}
			switch {
			case len(args) == 0 && dataset == "":
				return errors.New("either FILE or --dataset is required")
			case len(args) == 1 && dataset != "":
				return errors.New("FILE and --dataset are mutually exclusive")
			}

			var table model.PieceTable
			if dataset != "" {
				d, err := project.ResolveDataset(opts.Store, dataset)
				if err != nil {
					return err
				}
				table = d.Table
			} else {
				t, err := importTable(cmd.ErrOrStderr(), args[0], "")
				if err != nil {
					return err
				}
				table = t
				if err := rememberFile(opts, args[0]); err != nil {
					warnf(cmd.ErrOrStderr(), "could not update recent files: %v", err)
				}
			}

			packer := engine.New(opts.Settings)
			comparisons, err := packer.CompareWidths(cmd.Context(), table, opts.Settings.FabricWidths)
			if err != nil {
				return err
			}
			if err := writeReport(cmd, opts, comparisons); err != nil {
				return err
			}
			return runExports(cmd, opts, comparisons)
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", dataset, "Stored dataset to pack instead of a file")
	opts.AddCalculationFlags(cmd.Flags())
	opts.AddExportFlags(cmd.Flags())
	return cmd
}

// importTable reads a cut list file. Warnings go to errOut; any row error
// fails the import. The table is named after the file unless name is set.
func importTable(errOut io.Writer, path, name string) (model.PieceTable, error) {
	result := importer.ImportFile(path)
	for _, w := range result.Warnings {
		warnf(errOut, "%s: %s", path, w)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	table, err := result.Table(name)
	if err != nil {
		return model.PieceTable{}, fmt.Errorf("import %s: %w", path, err)
	}
	return table, nil
}

func rememberFile(opts *options.Options, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	opts.Config.AddRecentFile(abs)
	return project.SaveAppConfig(opts.ConfigPath, opts.Config)
}

// runExports writes every output file requested on the command line.
func runExports(cmd *cobra.Command, opts *options.Options, comparisons []model.Comparison) error {
	logger := klog.FromContext(cmd.Context())
	errOut := cmd.ErrOrStderr()

	single := []struct {
		path  string
		write func(string, []model.Comparison) error
	}{
		{opts.PDFPath, export.ExportPDF},
		{opts.XLSXPath, export.ExportXLSX},
		{opts.LabelsPath, export.ExportLabels},
	}
	for _, s := range single {
		if s.path == "" {
			continue
		}
		if err := s.write(s.path, comparisons); err != nil {
			return fmt.Errorf("write %s: %w", s.path, err)
		}
		notef(errOut, "wrote %s", s.path)
	}

	perLayout := []struct {
		dir   string
		write func(string, []model.Comparison) ([]string, error)
	}{
		{opts.PNGDir, export.ExportPNG},
		{opts.DXFDir, export.ExportDXF},
	}
	for _, s := range perLayout {
		if s.dir == "" {
			continue
		}
		paths, err := s.write(s.dir, comparisons)
		if err != nil {
			return fmt.Errorf("write to %s: %w", s.dir, err)
		}
		logger.V(2).Info("Exported layouts", "dir", s.dir, "files", len(paths))
		notef(errOut, "wrote %d file(s) to %s", len(paths), s.dir)
	}
	return nil
}
