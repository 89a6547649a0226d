package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/internal/importer"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

func newImportCmd(a *app) *cobra.Command {
	var format, policy string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import tokens from a JSON, YAML or JSONL file",
		Long: `Import reads W3C design-token JSON (nested groups with $value, $type and
$description), flat or "tokens"-wrapped JSON, YAML of the same shapes, or
JSONL with one token object per line. The whole file is validated first;
any invalid item rejects the batch and nothing is stored.

With --policy skip, keys that already exist are left alone and counted as
skipped. The default policy reject treats them as failures.

Example:
  swatch import tokens.json
  swatch import tokens.yaml --policy skip
  swatch import export.txt --format jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f importer.Format
			if format != "" {
				var err error
				if f, err = importer.ParseFormat(format); err != nil {
					return err
				}
			}
			items, err := importer.ParseFile(args[0], f)
			if err != nil {
				return err
			}

			store, err := a.tokens()
			if err != nil {
				return err
			}
			result, err := store.Import(items, types.ImportPolicy(policy))
			if err != nil {
				return err
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tokens (%d skipped)\n", result.Added, result.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json, yaml, jsonl (default: from extension)")
	cmd.Flags().StringVar(&policy, "policy", string(types.ImportReject), "existing keys: reject or skip")
	return cmd
}
