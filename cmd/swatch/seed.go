package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/pkg/sqlite"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the built-in default tokens",
		Long:  `Seed adds the default token set for every category. Keys that already exist are left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.tokens()
			if err != nil {
				return err
			}
			defaults := sqlite.DefaultTokens()
			added, err := store.Seed(defaults)
			if err != nil {
				return err
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"added": added, "skipped": len(defaults) - added})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tokens (%d already present)\n", added, len(defaults)-added)
			return nil
		},
	}
}
