package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/swatch/internal/export"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

func newSnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Create and inspect immutable snapshots",
		Long: `A snapshot freezes the whole live token set. Snapshots are referenced
by id or by version label; a label names its most recent snapshot.`,
	}
	cmd.AddCommand(
		newSnapshotCreateCmd(a),
		newSnapshotListCmd(a),
		newSnapshotShowCmd(a),
		newSnapshotDeleteCmd(a),
		newSnapshotExportCmd(a),
	)
	return cmd
}

func newSnapshotCreateCmd(a *app) *cobra.Command {
	var version, name, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the live token set",
		Long: `Create copies every live token into a new snapshot and prints its id.
Without --version the label is the creation time as YYYYMMDDhhmmss.

Example:
  swatch snapshot create --version v1.0.0 --name "Launch"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.snapshots()
			if err != nil {
				return err
			}
			snap, err := mgr.Create(version, name, description)
			if err != nil {
				return fmt.Errorf("create snapshot: %w", err)
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.SnapshotID)
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "version label (default: creation timestamp)")
	cmd.Flags().StringVar(&name, "name", "", "snapshot name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "snapshot description")
	return cmd
}

func newSnapshotListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.snapshots()
			if err != nil {
				return err
			}
			snaps, err := mgr.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.json {
				return writeJSON(out, snaps)
			}
			if len(snaps) == 0 {
				fmt.Fprintln(out, "No snapshots found")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tVERSION\tNAME\tTOKENS\tCREATED")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.SnapshotID, s.Version, s.Name, s.EntryCount, s.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newSnapshotShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show a snapshot and its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.snapshots()
			if err != nil {
				return err
			}
			snap, err := mgr.Get(args[0])
			if err != nil {
				return err
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			return writeSnapshot(cmd.OutOrStdout(), snap)
		},
	}
}

func writeSnapshot(out io.Writer, s *types.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id:\t%s\n", s.SnapshotID)
	fmt.Fprintf(w, "version:\t%s\n", s.Version)
	if s.Name != "" {
		fmt.Fprintf(w, "name:\t%s\n", s.Name)
	}
	if s.Description != "" {
		fmt.Fprintf(w, "description:\t%s\n", s.Description)
	}
	fmt.Fprintf(w, "created:\t%s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "tokens:\t%d\n", s.EntryCount)
	if err := w.Flush(); err != nil {
		return err
	}
	if len(s.Entries) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tCATEGORY")
	for _, e := range s.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, e.Value, e.Category)
	}
	return w.Flush()
}

func newSnapshotDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ref>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.snapshots()
			if err != nil {
				return err
			}
			if err := mgr.Delete(args[0]); err != nil {
				return err
			}
			if a.flags.json {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
			return nil
		},
	}
}

func newSnapshotExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <ref>",
		Short: "Export a snapshot as a JSON document",
		Long: `Export writes the snapshot, its entries and summary metadata (token
count, per-category counts, deprecated count) as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := a.snapshots()
			if err != nil {
				return err
			}
			snap, err := mgr.Get(args[0])
			if err != nil {
				return err
			}
			data, err := export.SnapshotJSON(snap)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
