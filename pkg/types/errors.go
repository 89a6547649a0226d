package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every structured error below unwraps to one of these so
// callers can branch with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrInvalidValue    = errors.New("invalid value")
	ErrInvalidKey      = errors.New("invalid key")
	ErrInvalidCategory = errors.New("invalid category")
	ErrReservedVersion = errors.New("reserved version label")
	ErrImportRejected  = errors.New("import rejected")
	ErrStorage         = errors.New("storage failure")
)

// ValidationError reports a value that does not conform to its category's
// rule. Reason names the structural check that failed.
type ValidationError struct {
	Category Category
	Value    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %s", e.Category, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidValue }

// KeyError reports a malformed token key or alias.
type KeyError struct {
	Key    string
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

func (e *KeyError) Unwrap() error { return ErrInvalidKey }

// DuplicateKeyError reports an add that collides with an existing key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("token %q already exists", e.Key)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// Kinds of entity a NotFoundError can name.
const (
	KindToken    = "token"
	KindSnapshot = "snapshot"
)

// NotFoundError reports a reference to an unknown token or snapshot.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Ref)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ImportFailure is one rejected candidate of an import batch.
type ImportFailure struct {
	Index int
	Key   string
	Err   error
}

func (f ImportFailure) String() string {
	return fmt.Sprintf("#%d %s: %v", f.Index+1, f.Key, f.Err)
}

// ImportError aggregates every failure found while checking an import
// batch. When it is returned nothing from the batch was persisted.
type ImportError struct {
	Failures []ImportFailure
}

func (e *ImportError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "import rejected: %d invalid item(s)", len(e.Failures))
	for _, f := range e.Failures {
		sb.WriteString("\n  ")
		sb.WriteString(f.String())
	}
	return sb.String()
}

// Unwrap exposes ErrImportRejected and each failure's cause.
func (e *ImportError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	errs = append(errs, ErrImportRejected)
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// StorageError wraps a failure of the persistence layer. The enclosing
// transaction has been rolled back; it is not user-correctable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
