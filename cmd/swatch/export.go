package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/internal/export"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

// exportFlags are shared by the export-* commands.
type exportFlags struct {
	out               string
	category          string
	includeDeprecated bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "only export this category")
	cmd.Flags().BoolVar(&f.includeDeprecated, "include-deprecated", false, "include deprecated tokens")
}

func newExportCSSCmd(a *app) *cobra.Command {
	var (
		f      exportFlags
		prefix string
	)
	cmd := &cobra.Command{
		Use:   "export-css",
		Short: "Export tokens as CSS custom properties",
		Long: `Export-css renders the live tokens as a :root block of CSS custom
properties grouped by category. The prefix defaults to css_prefix from
config.yaml.

Example:
  swatch export-css --out tokens.css
  swatch export-css --prefix brand --category color`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("prefix") {
				prefix = a.cfg.GetString(cfgKeyCSSPrefix)
			}
			return runExport(a, cmd, f, func(tokens []*types.Token) (string, error) {
				return export.CSS(tokens, export.CSSOptions{Prefix: prefix})
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&prefix, "prefix", export.DefaultPrefix, "custom property prefix")
	return cmd
}

func newExportJSCmd(a *app) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export-js",
		Short: "Export tokens as an ES module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(a, cmd, f, export.JS)
		},
	}
	f.register(cmd)
	return cmd
}

func newExportTailwindCmd(a *app) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export-tailwind",
		Short: "Export tokens as a Tailwind theme extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(a, cmd, f, export.Tailwind)
		},
	}
	f.register(cmd)
	return cmd
}

// runExport lists the selected tokens, renders them, and writes the result
// to --out or stdout.
func runExport(a *app, cmd *cobra.Command, f exportFlags, render func([]*types.Token) (string, error)) error {
	filter, err := categoryFilter(f.category, !f.includeDeprecated)
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
	text, err := render(tokens)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return writeOutput(cmd, f.out, []byte(text))
}

// writeOutput writes data atomically to path, or to stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := export.WriteFile(path, data); err != nil {
		return systemErr(fmt.Errorf("write %s: %w", path, err))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
