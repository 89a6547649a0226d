package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		category    string
		description string
		aliases     []string
		deprecated  bool
		reason      string
	)
	cmd := &cobra.Command{
		Use:   "add <key> <value>",
		Short: "Add a token",
		Long: `Add validates a new token against its category's rule and stores it.
The key must be unused.

Example:
  swatch add color/brand/primary "#FF1D6C" --category color
  swatch add spacing/4 16px -c spacing --description "Base gap"
  swatch add color/old "#000" -c color --deprecated --reason "use color/text/primary"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := types.ParseCategory(category)
			if err != nil {
				return err
			}
			store, err := a.tokens()
			if err != nil {
				return err
			}
			tok, err := store.Add(types.Token{
				Key:              args[0],
				Value:            args[1],
				Category:         c,
				Description:      description,
				Aliases:          aliases,
				Deprecated:       deprecated || reason != "",
				DeprecatedReason: reason,
			})
			if err != nil {
				return fmt.Errorf("add %s: %w", args[0], err)
			}

			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), tok)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s = %s [%s]\n", tok.Key, tok.Value, tok.Category)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", categoryUsage()+" (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "human-readable description")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "alternative key (repeatable)")
	cmd.Flags().BoolVar(&deprecated, "deprecated", false, "mark the token deprecated")
	cmd.Flags().StringVar(&reason, "reason", "", "deprecation reason (implies --deprecated)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
