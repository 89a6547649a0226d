package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/internal/diff"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Diff output formats.
const (
	diffFormatText    = "text"
	diffFormatJSON    = "json"
	diffFormatUnified = "unified"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		format  string
		all     bool
		context int
	)
	cmd := &cobra.Command{
		Use:   "diff <ref-a> [ref-b]",
		Short: "Compare two snapshots or a snapshot and the live set",
		Long: `Diff classifies every key of either side as added, removed, modified or
unchanged going from ref-a to ref-b. A reference is "current", a snapshot
id or a version label; ref-b defaults to "current". Only value and
category are compared.

Example:
  swatch diff v1.0.0
  swatch diff v1.0.0 v1.1.0 --format unified
  swatch diff v1.0.0 current --all`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.json {
				format = diffFormatJSON
			}
			switch format {
			case diffFormatText, diffFormatJSON, diffFormatUnified:
			default:
				return fmt.Errorf("unknown diff format %q (want text, json or unified)", format)
			}

			refB := types.CurrentRef
			if len(args) == 2 {
				refB = args[1]
			}
			catalog, err := a.open()
			if err != nil {
				return err
			}
			report, err := catalog.Diff(args[0], refB)
			if err != nil {
				return err
			}
			return writeDiff(cmd.OutOrStdout(), report, format, all, context)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", diffFormatText, "output format: text, json, unified")
	cmd.Flags().BoolVar(&all, "all", false, "list unchanged keys in text output")
	cmd.Flags().IntVarP(&context, "context", "U", diff.DefaultContext, "context lines for unified output")
	return cmd
}

func writeDiff(w io.Writer, report *types.DiffReport, format string, all bool, context int) error {
	switch format {
	case diffFormatJSON:
		return writeJSON(w, report)
	case diffFormatUnified:
		s, err := diff.Unified(report, context)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	default:
		return diff.WriteText(w, report, all)
	}
}
