package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/piwi3910/YardCut/cmd/yardcut/options"
	"github.com/piwi3910/YardCut/internal/model"
	"github.com/piwi3910/YardCut/internal/project"
)

func newConfigCommand(opts *options.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file and backups",
	}
	cmd.AddCommand(
		newConfigInitCommand(opts),
		newConfigShowCommand(opts),
		newConfigExportCommand(opts),
		newConfigImportCommand(opts),
	)
	return cmd
}

func newConfigInitCommand(opts *options.Options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", opts.ConfigPath)
			}
			if err := project.SaveAppConfig(opts.ConfigPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			notef(cmd.ErrOrStderr(), "wrote %s", opts.ConfigPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", force, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			data, err := yaml.Marshal(opts.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigExportCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Back up the config and user datasets to one JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], opts.Config, opts.Store); err != nil {
				return err
			}
			notef(cmd.ErrOrStderr(), "wrote %s", args[0])
			return nil
		},
	}
}

func newConfigImportCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Restore the config and user datasets from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(cmd.Flags()); err != nil {
				return err
			}
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(opts.ConfigPath, backup.Config); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			n := project.RestoreDatasets(&opts.Store, backup)
			if err := project.SaveDatasets(opts.DatasetPath, opts.Store); err != nil {
				return fmt.Errorf("failed to save datasets: %w", err)
			}
			notef(cmd.ErrOrStderr(), "restored config and %d dataset(s) from %s", n, args[0])
			return nil
		},
	}
}
