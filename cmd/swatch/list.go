package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		category     string
		noDeprecated bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tokens ordered by key",
		Long: `List prints the live tokens ordered by key.

Example:
  swatch list
  swatch list --category color
  swatch list --no-deprecated --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := categoryFilter(category, noDeprecated)
			if err != nil {
				return err
			}
			store, err := a.tokens()
			if err != nil {
				return err
			}
			tokens, err := store.List(filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.json {
				return writeJSON(out, tokens)
			}
			if len(tokens) == 0 {
				fmt.Fprintln(out, "No tokens found")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE\tCATEGORY\tNOTE")
			for _, t := range tokens {
				note := ""
				if t.Deprecated {
					note = "deprecated"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Key, t.Value, t.Category, note)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	cmd.Flags().BoolVar(&noDeprecated, "no-deprecated", false, "omit deprecated tokens")
	return cmd
}
