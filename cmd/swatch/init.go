package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize swatch configuration and storage",
		Long: `Init writes a default config.yaml to the configuration directory if
none exists, then creates the data directory and database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.open(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.flags.json {
				return writeJSON(out, map[string]string{
					"config_dir": a.configDir,
					"data_dir":   a.dataDir,
				})
			}
			fmt.Fprintln(out, "Swatch initialized successfully")
			fmt.Fprintln(out, "  config:", a.configDir)
			fmt.Fprintln(out, "  data:  ", a.dataDir)
			return nil
		},
	}
}
