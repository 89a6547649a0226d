package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Compile-time interface check: snapshotsTable must implement SnapshotManager.
var _ types.SnapshotManager = (*snapshotsTable)(nil)

// defaultVersionFormat labels snapshots created without a version.
const defaultVersionFormat = "20060102150405"

const snapshotColumns = `s.snapshot_id, s.version, s.name, s.description, s.created_at,
    (SELECT COUNT(*) FROM snapshot_entries e WHERE e.snapshot_id = s.snapshot_id)`

// snapshotsTable implements types.SnapshotManager over the snapshots and
// snapshot_entries tables.
type snapshotsTable struct {
	backend *Backend
}

// Create copies every live token into a new snapshot in one transaction.
// An empty version is replaced with a timestamp label.
func (st *snapshotsTable) Create(version, name, description string) (*types.Snapshot, error) {
	release, err := st.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	now := st.backend.clock()
	version = strings.TrimSpace(version)
	if version == "" {
		version = now.Format(defaultVersionFormat)
	}
	if strings.EqualFold(version, types.CurrentRef) {
		return nil, fmt.Errorf("%w: %q names the live set", types.ErrReservedVersion, version)
	}
	id, err := generateUUID()
	if err != nil {
		return nil, err
	}

	snap := &types.Snapshot{
		SnapshotID:  id,
		Version:     version,
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}
	err = st.backend.withTx("create snapshot", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO snapshots (snapshot_id, version, name, description, created_at) VALUES (?, ?, ?, ?, ?)",
			id, version, name, description, formatTime(now),
		)
		if err != nil {
			return storageErr("create snapshot", err)
		}
		_, err = tx.Exec(
			`INSERT INTO snapshot_entries (snapshot_id, key, value, category, description, deprecated)
			SELECT ?, key, value, category, description, deprecated FROM tokens ORDER BY key`,
			id,
		)
		if err != nil {
			return storageErr("copy snapshot entries", err)
		}
		snap.Entries, err = loadEntries(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	snap.EntryCount = len(snap.Entries)
	st.backend.logger.Debug("snapshot created", "id", id, "version", version, "entries", snap.EntryCount)
	return snap, nil
}

// Get resolves ref and loads the snapshot with its entries.
func (st *snapshotsTable) Get(ref string) (*types.Snapshot, error) {
	release, err := st.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	snap, err := resolveSnapshot(st.backend.db, ref)
	if err != nil {
		return nil, err
	}
	if snap.Entries, err = loadEntries(st.backend.db, snap.SnapshotID); err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns every snapshot by creation time, oldest first. Entries are
// not loaded.
func (st *snapshotsTable) List() ([]*types.Snapshot, error) {
	release, err := st.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := st.backend.db.Query(
		"SELECT " + snapshotColumns + " FROM snapshots s ORDER BY s.created_at ASC, s.snapshot_id ASC",
	)
	if err != nil {
		return nil, storageErr("list snapshots", err)
	}
	defer rows.Close()

	snaps := []*types.Snapshot{}
	for rows.Next() {
		snap, err := hydrateSnapshot(rows)
		if err != nil {
			return nil, storageErr("list snapshots", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list snapshots", err)
	}
	return snaps, nil
}

// Delete removes the snapshot named by ref and all its entries.
func (st *snapshotsTable) Delete(ref string) error {
	release, err := st.backend.acquire()
	if err != nil {
		return err
	}
	defer release()

	return st.backend.withTx("delete snapshot", func(tx *sql.Tx) error {
		snap, err := resolveSnapshot(tx, ref)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM snapshot_entries WHERE snapshot_id = ?", snap.SnapshotID); err != nil {
			return storageErr("delete snapshot entries", err)
		}
		if _, err := tx.Exec("DELETE FROM snapshots WHERE snapshot_id = ?", snap.SnapshotID); err != nil {
			return storageErr("delete snapshot", err)
		}
		st.backend.logger.Debug("snapshot deleted", "id", snap.SnapshotID, "version", snap.Version)
		return nil
	})
}

// resolveSnapshot finds the snapshot whose id is ref or, failing that, the
// most recently created snapshot whose version is ref.
func resolveSnapshot(q querier, ref string) (*types.Snapshot, error) {
	if ref == "" || ref == types.CurrentRef {
		return nil, &types.NotFoundError{Kind: types.KindSnapshot, Ref: ref}
	}
	snap, err := hydrateSnapshot(q.QueryRow(
		"SELECT "+snapshotColumns+" FROM snapshots s WHERE s.snapshot_id = ?", ref,
	))
	if errors.Is(err, sql.ErrNoRows) {
		snap, err = hydrateSnapshot(q.QueryRow(
			"SELECT "+snapshotColumns+` FROM snapshots s WHERE s.version = ?
			ORDER BY s.created_at DESC, s.snapshot_id DESC LIMIT 1`, ref,
		))
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &types.NotFoundError{Kind: types.KindSnapshot, Ref: ref}
	}
	if err != nil {
		return nil, storageErr("resolve snapshot", err)
	}
	return snap, nil
}

func loadEntries(q querier, snapshotID string) ([]types.SnapshotEntry, error) {
	rows, err := q.Query(
		"SELECT key, value, category, description, deprecated FROM snapshot_entries WHERE snapshot_id = ? ORDER BY key ASC",
		snapshotID,
	)
	if err != nil {
		return nil, storageErr("load snapshot entries", err)
	}
	defer rows.Close()

	entries := []types.SnapshotEntry{}
	for rows.Next() {
		var e types.SnapshotEntry
		var category string
		if err := rows.Scan(&e.Key, &e.Value, &category, &e.Description, &e.Deprecated); err != nil {
			return nil, storageErr("scan snapshot entry", err)
		}
		if e.Category, err = types.ParseCategory(category); err != nil {
			return nil, storageErr("scan snapshot entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("load snapshot entries", err)
	}
	return entries, nil
}

// hydrateSnapshot converts a snapshots row into a *types.Snapshot.
func hydrateSnapshot(s scanner) (*types.Snapshot, error) {
	var snap types.Snapshot
	var createdAt string
	if err := s.Scan(&snap.SnapshotID, &snap.Version, &snap.Name, &snap.Description, &createdAt, &snap.EntryCount); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	snap.CreatedAt = t
	return &snap, nil
}
