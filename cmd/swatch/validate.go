package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/pkg/types"
	"github.com/mesh-intelligence/swatch/pkg/validate"
)

// errInvalidTokens is returned when validate finds live tokens that no
// longer pass.
var errInvalidTokens = errors.New("invalid tokens found")

func newValidateCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "validate [value]",
		Short: "Validate the live set or a single value",
		Long: `With no argument, validate re-checks every live token and reports the
ones that fail. With --category and a value, it checks that value alone
without touching the store.

Example:
  swatch validate
  swatch validate --category color "#FF1D6C"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return validateValue(a, cmd, category, args[0])
			}
			if category != "" {
				return errors.New("--category needs a value to check")
			}
			return validateAll(a, cmd)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", categoryUsage())
	return cmd
}

func validateValue(a *app, cmd *cobra.Command, category, value string) error {
	if category == "" {
		return errors.New("--category is required when validating a value")
	}
	c, err := types.ParseCategory(category)
	if err != nil {
		return err
	}
	if err := validate.Value(c, value); err != nil {
		return err
	}
	if a.flags.json {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"category": c, "value": value, "valid": true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "valid %s value %q\n", c, value)
	return nil
}

func validateAll(a *app, cmd *cobra.Command) error {
	store, err := a.tokens()
	if err != nil {
		return err
	}
	report, err := store.ValidateAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.flags.json {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%d tokens, %d valid, %d invalid, %d deprecated\n",
			report.Total, report.Valid, len(report.Invalid), len(report.Deprecated))
		for _, f := range report.Invalid {
			fmt.Fprintf(out, "  invalid %s: %s\n", f.Key, f.Reason)
		}
		for _, key := range report.Deprecated {
			fmt.Fprintf(out, "  deprecated %s\n", key)
		}
	}
	if len(report.Invalid) > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidTokens, len(report.Invalid), report.Total)
	}
	return nil
}
