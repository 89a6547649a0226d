package types

import "fmt"

// ChangeKind classifies one key in a diff.
type ChangeKind uint8

// Change kinds.
const (
	Unchanged ChangeKind = iota
	Added
	Removed
	Modified
)

var changeKindNames = [...]string{
	Unchanged: "unchanged",
	Added:     "added",
	Removed:   "removed",
	Modified:  "modified",
}

func (k ChangeKind) String() string {
	if int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return fmt.Sprintf("ChangeKind(%d)", uint8(k))
}

// MarshalText encodes the kind as its name.
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name. Unknown names are an error.
func (k *ChangeKind) UnmarshalText(text []byte) error {
	for i, name := range changeKindNames {
		if name == string(text) {
			*k = ChangeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown change kind %q", text)
}

// TokenState is the part of a token that participates in diff equality.
// Descriptions and timestamps are metadata and never compared.
type TokenState struct {
	Value    string   `json:"value"`
	Category Category `json:"category"`
}

// DiffEntry is the status of one key when comparing source A against B.
// Old is set for removed, modified and unchanged entries; New is set for
// added, modified and unchanged entries.
type DiffEntry struct {
	Key  string      `json:"key"`
	Kind ChangeKind  `json:"kind"`
	Old  *TokenState `json:"old,omitempty"`
	New  *TokenState `json:"new,omitempty"`
}

// DiffSummary counts entries per kind.
type DiffSummary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// DiffReport is the result of comparing two references. Entries hold every
// key of either side exactly once, ordered by key.
type DiffReport struct {
	A       string      `json:"a"`
	B       string      `json:"b"`
	Summary DiffSummary `json:"summary"`
	Entries []DiffEntry `json:"entries"`
}

// Changes returns the entries that are not unchanged.
func (r *DiffReport) Changes() []DiffEntry {
	var out []DiffEntry
	for _, e := range r.Entries {
		if e.Kind != Unchanged {
			out = append(out, e)
		}
	}
	return out
}

// HasChanges reports whether any key was added, removed or modified.
func (r *DiffReport) HasChanges() bool {
	return r.Summary.Added+r.Summary.Removed+r.Summary.Modified > 0
}

// Entry returns the entry for key, if present.
func (r *DiffReport) Entry(key string) (DiffEntry, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return DiffEntry{}, false
}
