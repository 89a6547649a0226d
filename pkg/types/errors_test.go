package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		msg    string
	}{
		{
			name:   "validation error",
			err:    &ValidationError{Category: CategoryOpacity, Value: "1.5", Reason: "out of range [0, 1]"},
			target: ErrInvalidValue,
			msg:    `invalid opacity value "1.5": out of range [0, 1]`,
		},
		{
			name:   "key error",
			err:    &KeyError{Key: "Bad Key", Reason: "uppercase"},
			target: ErrInvalidKey,
			msg:    `invalid key "Bad Key": uppercase`,
		},
		{
			name:   "duplicate key",
			err:    &DuplicateKeyError{Key: "color/a"},
			target: ErrDuplicateKey,
			msg:    `token "color/a" already exists`,
		},
		{
			name:   "not found",
			err:    &NotFoundError{Kind: KindSnapshot, Ref: "v9"},
			target: ErrNotFound,
			msg:    `snapshot "v9" not found`,
		},
		{
			name:   "storage",
			err:    &StorageError{Op: "commit", Err: errors.New("disk full")},
			target: ErrStorage,
			msg:    "storage: commit: disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestImportErrorUnwrapsFailures(t *testing.T) {
	err := &ImportError{Failures: []ImportFailure{
		{Index: 2, Key: "opacity/x", Err: &ValidationError{Category: CategoryOpacity, Value: "2", Reason: "out of range [0, 1]"}},
		{Index: 4, Key: "color/a", Err: &DuplicateKeyError{Key: "color/a"}},
	}}

	assert.ErrorIs(t, err, ErrImportRejected)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NotErrorIs(t, err, ErrNotFound)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "2", ve.Value)

	assert.Contains(t, err.Error(), "2 invalid item(s)")
	assert.Contains(t, err.Error(), "#3 opacity/x")
	assert.Contains(t, err.Error(), "#5 color/a")
}

func TestStorageErrorExposesCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := &StorageError{Op: "begin", Err: cause}
	assert.ErrorIs(t, err, cause)
}
