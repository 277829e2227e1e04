package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/piwi3910/YardCut/cmd/yardcut/options"
	"github.com/piwi3910/YardCut/internal/model"
	"github.com/piwi3910/YardCut/internal/project"
	"github.com/piwi3910/YardCut/internal/report"
)

func newDatasetsCommand(opts *options.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"dataset", "ds"},
		Short:   "Manage stored cut lists",
	}
	cmd.AddCommand(
		newDatasetsListCommand(opts),
		newDatasetsShowCommand(opts),
		newDatasetsImportCommand(opts),
		newDatasetsRemoveCommand(opts),
	)
	return cmd
}

func newDatasetsListCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			builtin := color.New(color.Faint).SprintFunc()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPIECES\tDESCRIPTION")
			for _, d := range opts.Store.Datasets {
				desc := d.Description
				if d.Builtin {
					desc = builtin(desc + " (built-in)")
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Name, d.Table.Count(), desc)
			}
			return tw.Flush()
		},
	}
}

func newDatasetsShowCommand(opts *options.Options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print the pieces of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			d, err := project.ResolveDataset(opts.Store, args[0])
			if err != nil {
				return err
			}
			return printDataset(cmd, d, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(report.FormatText), "Output format: text, json or yaml")
	return cmd
}

func printDataset(cmd *cobra.Command, d model.Dataset, format report.Format) error {
	out := cmd.OutOrStdout()
	switch format {
	case report.FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case report.FormatYAML:
		data, err := yaml.Marshal(d)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", d.Name)
	if d.Description != "" {
		fmt.Fprintf(tw, "# %s\n", d.Description)
	}
	fmt.Fprintln(tw, "LABEL\tHORIZONTAL\tVERTICAL\tQTY")
	for _, p := range d.Table.Pieces {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%d\n", p.Label, p.Horizontal, p.Vertical, p.Quantity)
	}
	return tw.Flush()
}

func newDatasetsImportCommand(opts *options.Options) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a cut list read from a CSV, Excel or DXF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			table, err := importTable(cmd.ErrOrStderr(), args[0], name)
			if err != nil {
				return err
			}
			d, err := project.PutDataset(&opts.Store, table.Name, description, table)
			if err != nil {
				return err
			}
			if err := project.SaveDatasets(opts.DatasetPath, opts.Store); err != nil {
				return fmt.Errorf("failed to save datasets: %w", err)
			}
			notef(cmd.ErrOrStderr(), "stored %s with %d piece(s)", d.Name, d.Table.Count())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", name, "Dataset name, defaults to the file name")
	cmd.Flags().StringVar(&description, "description", description, "Dataset description")
	return cmd
}

func newDatasetsRemoveCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a stored dataset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			if err := project.RemoveDataset(&opts.Store, args[0]); err != nil {
				return err
			}
			if err := project.SaveDatasets(opts.DatasetPath, opts.Store); err != nil {
				return fmt.Errorf("failed to save datasets: %w", err)
			}
			notef(cmd.ErrOrStderr(), "removed %s", args[0])
			return nil
		},
	}
}
