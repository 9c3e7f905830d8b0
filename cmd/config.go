package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/ui"
)

func configCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create config files",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Write(cmd.OutOrStdout(), format)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "toml", "toml or yaml")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the default config to a .toml or .yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", ui.Good.Sprint(ui.Star), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	c.AddCommand(show, initCmd)
	return c
}
