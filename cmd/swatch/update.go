package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

func newUpdateCmd(a *app) *cobra.Command {
	var (
		value        string
		category     string
		description  string
		aliases      []string
		clearAliases bool
		deprecated   bool
		reason       string
	)
	cmd := &cobra.Command{
		Use:   "update <key>",
		Short: "Update a token",
		Long: `Update changes the given fields of an existing token. The resulting
value and category are validated together; on failure nothing changes.

Example:
  swatch update color/brand/primary --value "#E0004F"
  swatch update spacing/4 --category spacing --value 1rem
  swatch update color/old --deprecated=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var patch types.TokenPatch
			if f.Changed("value") {
				patch.Value = &value
			}
			if f.Changed("category") {
				c, err := types.ParseCategory(category)
				if err != nil {
					return err
				}
				patch.Category = &c
			}
			if f.Changed("description") {
				patch.Description = &description
			}
			switch {
			case clearAliases && f.Changed("alias"):
				return errors.New("--alias and --clear-aliases are mutually exclusive")
			case clearAliases:
				patch.Aliases = []string{}
			case f.Changed("alias"):
				patch.Aliases = aliases
			}
			if f.Changed("deprecated") {
				patch.Deprecated = &deprecated
			}
			if f.Changed("reason") {
				if f.Changed("deprecated") && !deprecated {
					return errors.New("--reason requires the token to be deprecated")
				}
				on := true
				patch.Deprecated = &on
				patch.DeprecatedReason = &reason
			}

			store, err := a.tokens()
			if err != nil {
				return err
			}
			tok, err := store.Update(args[0], patch)
			if err != nil {
				return fmt.Errorf("update %s: %w", args[0], err)
			}

			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), tok)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s = %s [%s] (revision %d)\n", tok.Key, tok.Value, tok.Category, tok.Revision)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.Flags().StringVarP(&category, "category", "c", "", categoryUsage())
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "replace aliases (repeatable)")
	cmd.Flags().BoolVar(&clearAliases, "clear-aliases", false, "remove every alias")
	cmd.Flags().BoolVar(&deprecated, "deprecated", false, "set or clear the deprecated flag")
	cmd.Flags().StringVar(&reason, "reason", "", "deprecation reason (implies --deprecated)")
	return cmd
}
