package sqlite

// Schema DDL. Snapshot rows and their entries are write-once: triggers
// abort any UPDATE, so a snapshot can only be read or deleted wholesale.
const (
	createTokens = `CREATE TABLE IF NOT EXISTS tokens (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    aliases TEXT NOT NULL DEFAULT '[]',
    deprecated INTEGER NOT NULL DEFAULT 0,
    deprecated_reason TEXT NOT NULL DEFAULT '',
    revision INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSnapshots = `CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id TEXT PRIMARY KEY,
    version TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createSnapshotEntries = `CREATE TABLE IF NOT EXISTS snapshot_entries (
    snapshot_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    deprecated INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (snapshot_id, key),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(snapshot_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxTokensCategory   = `CREATE INDEX IF NOT EXISTS idx_tokens_category ON tokens(category);`
	idxSnapshotsVersion = `CREATE INDEX IF NOT EXISTS idx_snapshots_version ON snapshots(version, created_at);`
	idxSnapshotsCreated = `CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at, snapshot_id);`
)

// Trigger DDL enforcing snapshot immutability.
const (
	trgSnapshotsImmutable = `CREATE TRIGGER IF NOT EXISTS trg_snapshots_immutable
BEFORE UPDATE ON snapshots
BEGIN
    SELECT RAISE(ABORT, 'snapshots are immutable');
END;`

	trgSnapshotEntriesImmutable = `CREATE TRIGGER IF NOT EXISTS trg_snapshot_entries_immutable
BEFORE UPDATE ON snapshot_entries
BEGIN
    SELECT RAISE(ABORT, 'snapshot entries are immutable');
END;`
)

// schemaDDL lists every statement in dependency order.
var schemaDDL = []string{
	createTokens,
	createSnapshots,
	createSnapshotEntries,
	idxTokensCategory,
	idxSnapshotsVersion,
	idxSnapshotsCreated,
	trgSnapshotsImmutable,
	trgSnapshotEntriesImmutable,
}
