// Package sqlite implements the SQLite storage backend for swatch.
// The live token set, snapshots and their frozen entries live in one
// database file; every mutation runs in a single transaction and is
// committed with synchronous=FULL before the call returns.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/swatch/internal/diff"
	"github.com/mesh-intelligence/swatch/internal/logging"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

// DBFile is the database file name inside Config.DataDir.
const DBFile = "swatch.db"

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Compile-time interface checks.
var (
	_ types.Catalog = (*Backend)(nil)
	_ diff.Loader   = (*Backend)(nil)
)

// Backend implements types.Catalog on top of SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
	now      func() time.Time

	tokens    *tokensTable
	snapshots *snapshotsTable
	engine    *diff.Engine
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger for lifecycle and bulk-operation events.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock replaces time.Now for timestamps and default version labels.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	b.tokens = &tokensTable{backend: b}
	b.snapshots = &snapshotsTable{backend: b}
	b.engine = diff.NewEngine(b)
	return b
}

// Attach opens the database described by config, creating the data
// directory and schema if needed. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	path := config.DataDir
	if path != types.MemoryDataDir {
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return storageErr("create data dir", err)
		}
		path = filepath.Join(dataDir, DBFile)
	}

	db, err := openDB(path)
	if err != nil {
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Debug("backend attached", "path", path)
	return nil
}

// openDB opens path with a single connection so that pragmas, which are
// per connection, and the in-memory database both persist for the
// lifetime of the handle.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, storageErr(p, err)
		}
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, storageErr("create schema", err)
		}
	}
	return db, nil
}

// Detach closes the database. After Detach, all operations return
// ErrCatalogDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return storageErr("close", err)
	}
	b.logger.Debug("backend detached")
	return nil
}

// Tokens returns the live token store.
func (b *Backend) Tokens() (types.TokenStore, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	return b.tokens, nil
}

// Snapshots returns the snapshot manager.
func (b *Backend) Snapshots() (types.SnapshotManager, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	return b.snapshots, nil
}

// Diff compares refA against refB. Each side is loaded at call time, so a
// CurrentRef side reflects the live set as of this call.
func (b *Backend) Diff(refA, refB string) (*types.DiffReport, error) {
	return b.engine.Diff(refA, refB)
}

// Load returns the (value, category) state of every key in ref, which is
// CurrentRef, a snapshot id or a snapshot version label.
func (b *Backend) Load(ref string) (map[string]types.TokenState, error) {
	release, err := b.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if ref == types.CurrentRef {
		return loadStates(b.db, "SELECT key, value, category FROM tokens")
	}
	row, err := resolveSnapshot(b.db, ref)
	if err != nil {
		return nil, err
	}
	return loadStates(b.db,
		"SELECT key, value, category FROM snapshot_entries WHERE snapshot_id = ?", row.SnapshotID)
}

func loadStates(q querier, query string, args ...any) (map[string]types.TokenState, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, storageErr("load states", err)
	}
	defer rows.Close()

	states := make(map[string]types.TokenState)
	for rows.Next() {
		var key, value, category string
		if err := rows.Scan(&key, &value, &category); err != nil {
			return nil, storageErr("scan state", err)
		}
		cat, err := types.ParseCategory(category)
		if err != nil {
			return nil, storageErr("scan state", err)
		}
		states[key] = types.TokenState{Value: value, Category: cat}
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("load states", err)
	}
	return states, nil
}

// acquire takes the read lock for the duration of one store operation.
// Returns ErrCatalogDetached if the backend is not attached.
func (b *Backend) acquire() (release func(), err error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return nil, types.ErrCatalogDetached
	}
	return b.mu.RUnlock, nil
}

// withTx runs fn in a transaction and commits it if fn returns nil. Errors
// returned by fn pass through unchanged; begin and commit failures are
// storage errors.
func (b *Backend) withTx(op string, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.Begin()
	if err != nil {
		return storageErr(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageErr(op, err)
	}
	return nil
}

// clock returns the current time in UTC.
func (b *Backend) clock() time.Time {
	return b.now().UTC()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func storageErr(op string, err error) error {
	return &types.StorageError{Op: op, Err: err}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// generateUUID generates a new UUID v7 for snapshot ids.
func generateUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
