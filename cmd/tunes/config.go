package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmcdole/tunes/internal/adapter"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// config commands work without a catalog client
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.out == nil {
				a.out = cmd.OutOrStdout()
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print where config.yaml is read from",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(a.out, filepath.Join(a.configDir(), "config.yaml"))
			},
		},
		newConfigInitCmd(a),
	)
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.yaml with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.configDir()
			file := filepath.Join(dir, "config.yaml")
			if _, err := os.Stat(file); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", file)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := adapter.SaveConfigTo(adapter.DefaultConfig(), dir); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s\n", file)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
