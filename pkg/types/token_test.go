package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestTokenPatchApply(t *testing.T) {
	base := Token{
		Key:         "color/brand",
		Value:       "#ff0000",
		Category:    CategoryColor,
		Description: "Brand red",
		Aliases:     []string{"brand"},
	}

	t.Run("empty patch keeps every field", func(t *testing.T) {
		p := TokenPatch{}
		assert.True(t, p.IsEmpty())
		assert.Equal(t, base, p.Apply(base))
	})

	t.Run("category only keeps prior value", func(t *testing.T) {
		got := TokenPatch{Category: ptr(CategorySpacing)}.Apply(base)
		assert.Equal(t, "#ff0000", got.Value)
		assert.Equal(t, CategorySpacing, got.Category)
	})

	t.Run("value only keeps prior category", func(t *testing.T) {
		got := TokenPatch{Value: ptr("#00ff00")}.Apply(base)
		assert.Equal(t, "#00ff00", got.Value)
		assert.Equal(t, CategoryColor, got.Category)
		assert.Equal(t, "Brand red", got.Description)
	})

	t.Run("empty aliases slice clears aliases", func(t *testing.T) {
		got := TokenPatch{Aliases: []string{}}.Apply(base)
		assert.Empty(t, got.Aliases)
		assert.Equal(t, []string{"brand"}, base.Aliases)
	})

	t.Run("undeprecating clears the reason", func(t *testing.T) {
		dep := TokenPatch{Deprecated: ptr(true), DeprecatedReason: ptr("use color/new")}.Apply(base)
		assert.True(t, dep.Deprecated)
		assert.Equal(t, "use color/new", dep.DeprecatedReason)

		undep := TokenPatch{Deprecated: ptr(false)}.Apply(dep)
		assert.False(t, undep.Deprecated)
		assert.Empty(t, undep.DeprecatedReason)
	})

	t.Run("apply does not alias the input slice", func(t *testing.T) {
		got := TokenPatch{}.Apply(base)
		got.Aliases[0] = "changed"
		assert.Equal(t, "brand", base.Aliases[0])
	})
}
