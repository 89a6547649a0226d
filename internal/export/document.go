package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Document is the JSON form of a snapshot written by "snapshot export".
type Document struct {
	SnapshotID  string                `json:"snapshot_id"`
	Version     string                `json:"version"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"created_at"`
	Tokens      []types.SnapshotEntry `json:"tokens"`
	Metadata    DocumentMetadata      `json:"metadata"`
}

// DocumentMetadata summarises a Document's tokens.
type DocumentMetadata struct {
	Count           int            `json:"count"`
	Categories      map[string]int `json:"categories"`
	DeprecatedCount int            `json:"deprecated_count"`
}

// NewDocument builds the export document for snap, which must have its
// entries loaded.
func NewDocument(snap *types.Snapshot) Document {
	doc := Document{
		SnapshotID:  snap.SnapshotID,
		Version:     snap.Version,
		Name:        snap.Name,
		Description: snap.Description,
		CreatedAt:   snap.CreatedAt,
		Tokens:      snap.Entries,
		Metadata: DocumentMetadata{
			Count:      len(snap.Entries),
			Categories: make(map[string]int),
		},
	}
	if doc.Tokens == nil {
		doc.Tokens = []types.SnapshotEntry{}
	}
	for _, e := range snap.Entries {
		doc.Metadata.Categories[e.Category.String()]++
		if e.Deprecated {
			doc.Metadata.DeprecatedCount++
		}
	}
	return doc
}

// SnapshotJSON renders snap as an indented JSON document.
func SnapshotJSON(snap *types.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot %s: %w", snap.SnapshotID, err)
	}
	return append(data, '\n'), nil
}
