package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.tokens()
			if err != nil {
				return err
			}
			tok, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), tok)
			}
			return writeToken(cmd.OutOrStdout(), tok)
		},
	}
}

func writeToken(out io.Writer, t *types.Token) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "key:\t%s\n", t.Key)
	fmt.Fprintf(w, "value:\t%s\n", t.Value)
	fmt.Fprintf(w, "category:\t%s\n", t.Category)
	if t.Description != "" {
		fmt.Fprintf(w, "description:\t%s\n", t.Description)
	}
	if len(t.Aliases) > 0 {
		fmt.Fprintf(w, "aliases:\t%s\n", strings.Join(t.Aliases, ", "))
	}
	if t.Deprecated {
		reason := t.DeprecatedReason
		if reason == "" {
			reason = "yes"
		}
		fmt.Fprintf(w, "deprecated:\t%s\n", reason)
	}
	fmt.Fprintf(w, "revision:\t%d\n", t.Revision)
	fmt.Fprintf(w, "updated:\t%s\n", t.UpdatedAt.Format(time.RFC3339))
	return w.Flush()
}
