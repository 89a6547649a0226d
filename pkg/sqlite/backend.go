// Package sqlite provides the public API for the SQLite token backend.
// It exposes the factory and options while keeping the implementation
// internal.
package sqlite

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/swatch/internal/sqlite"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithLogger sets the logger used for lifecycle and bulk-operation events.
func WithLogger(l *slog.Logger) Option { return sqlite.WithLogger(l) }

// WithClock replaces time.Now for token timestamps and snapshot labels.
func WithClock(now func() time.Time) Option { return sqlite.WithClock(now) }

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewBackend()
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".swatch-db",
//	})
//	defer catalog.Detach()
func NewBackend(opts ...Option) types.Catalog {
	return sqlite.NewBackend(opts...)
}

// DefaultTokens returns the built-in default token set used by seeding.
func DefaultTokens() []types.Token {
	return sqlite.DefaultTokens()
}
