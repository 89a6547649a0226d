package types

import "errors"

// Catalog is the entry point to a token backend. Callers attach to a
// backend, work through the token store and snapshot manager, and detach
// when done.
type Catalog interface {
	// Attach opens the backend described by config, creating its storage
	// if needed. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Tokens returns the live token store.
	// Returns ErrCatalogDetached if the catalog is not attached.
	Tokens() (TokenStore, error)

	// Snapshots returns the snapshot manager.
	// Returns ErrCatalogDetached if the catalog is not attached.
	Snapshots() (SnapshotManager, error)

	// Diff compares two references. Each is CurrentRef, a snapshot id or a
	// snapshot version label.
	Diff(refA, refB string) (*DiffReport, error)
}

// TokenStore provides CRUD over the live token set. Every mutation is
// validated before it is written and committed before it returns.
type TokenStore interface {
	// Add inserts a new token. Returns a *DuplicateKeyError if the key
	// exists and the validator's error if the token is invalid.
	Add(token Token) (*Token, error)

	// Update applies patch to the token at key and re-validates the
	// resulting (value, category) pair. Returns a *NotFoundError if absent.
	Update(key string, patch TokenPatch) (*Token, error)

	// Get returns the token at key or a *NotFoundError.
	Get(key string) (*Token, error)

	// Delete removes the token at key. Snapshots are unaffected.
	Delete(key string) error

	// List returns tokens matching filter ordered by key.
	List(filter TokenFilter) ([]*Token, error)

	// Seed inserts each default through the Add contract, skipping keys that
	// already exist, and returns how many were inserted.
	Seed(defaults []Token) (int, error)

	// Import validates the whole batch first and persists it atomically.
	// Any failure rejects the batch with a single *ImportError.
	Import(items []ImportItem, policy ImportPolicy) (ImportResult, error)

	// ValidateAll re-runs validation over every live token.
	ValidateAll() (*ValidationReport, error)
}

// SnapshotManager freezes the live set into immutable snapshots.
type SnapshotManager interface {
	// Create copies every live token into a new snapshot atomically. An
	// empty live set yields a snapshot with zero entries.
	Create(version, name, description string) (*Snapshot, error)

	// Get resolves ref (id or version label) and loads its entries.
	Get(ref string) (*Snapshot, error)

	// List returns every snapshot ordered by creation time.
	List() ([]*Snapshot, error)

	// Delete removes a snapshot and its entries.
	Delete(ref string) error
}

// Catalog lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)
