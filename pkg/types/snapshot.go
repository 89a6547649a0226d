package types

import "time"

// CurrentRef is the reference that names the live token set in a diff.
// It is never stored as a snapshot and cannot be used as a version label.
const CurrentRef = "current"

// Snapshot is an immutable copy of the whole token set taken at CreatedAt.
// Entries are ordered by key. List results carry EntryCount but leave
// Entries nil; Get loads them.
type Snapshot struct {
	SnapshotID  string          `json:"snapshot_id"`
	Version     string          `json:"version"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	EntryCount  int             `json:"entry_count"`
	Entries     []SnapshotEntry `json:"entries,omitempty"`
}

// SnapshotEntry is one frozen token inside a snapshot.
type SnapshotEntry struct {
	Key         string   `json:"key"`
	Value       string   `json:"value"`
	Category    Category `json:"category"`
	Description string   `json:"description,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

// State returns the (value, category) pair that diffs compare.
func (e SnapshotEntry) State() TokenState {
	return TokenState{Value: e.Value, Category: e.Category}
}
