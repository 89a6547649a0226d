package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestTokens_AddGet(t *testing.T) {
	tests := []types.Token{
		{Key: "color/brand/blue", Value: "#3b82f6", Category: types.CategoryColor, Description: "Brand blue"},
		{Key: "spacing/4", Value: "16px", Category: types.CategorySpacing},
		{Key: "typography/size.sm", Value: "0.875rem", Category: types.CategoryTypography},
		{Key: "radius/md", Value: "8px", Category: types.CategoryRadius},
		{Key: "shadow/md", Value: "0 4px 6px -1px rgba(0,0,0,0.1)", Category: types.CategoryShadow},
		{Key: "opacity/half", Value: "0.5", Category: types.CategoryOpacity},
		{Key: "z-index/below", Value: "-1", Category: types.CategoryZIndex},
		{Key: "breakpoint/md", Value: "768px", Category: types.CategoryBreakpoint},
		{Key: "motion/fast", Value: "150ms", Category: types.CategoryMotion},
		{Key: "border/default", Value: "1px solid var(--ds-color-border)", Category: types.CategoryBorder},
	}
	store := tokenStore(t, setupBackend(t))

	for _, tt := range tests {
		t.Run(tt.Key, func(t *testing.T) {
			added, err := store.Add(tt)
			require.NoError(t, err)
			assert.Equal(t, 1, added.Revision)
			assert.False(t, added.CreatedAt.IsZero())
			assert.Equal(t, added.CreatedAt, added.UpdatedAt)

			got, err := store.Get(tt.Key)
			require.NoError(t, err)
			assert.Equal(t, tt.Value, got.Value)
			assert.Equal(t, tt.Category, got.Category)
			assert.Equal(t, tt.Description, got.Description)
			assert.Equal(t, added, got)
		})
	}
}

func TestTokens_AddDuplicate(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	_, err := store.Add(types.Token{Key: "color/a", Value: "#111111", Category: types.CategoryColor, Description: "orig"})
	require.NoError(t, err)

	_, err = store.Add(types.Token{Key: "color/a", Value: "#222222", Category: types.CategoryColor})
	var dup *types.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "color/a", dup.Key)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)

	got, err := store.Get("color/a")
	require.NoError(t, err)
	assert.Equal(t, "#111111", got.Value)
	assert.Equal(t, "orig", got.Description)
}

func TestTokens_AddInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token types.Token
		want  error
	}{
		{"bad color", types.Token{Key: "color/a", Value: "blue", Category: types.CategoryColor}, types.ErrInvalidValue},
		{"opacity range", types.Token{Key: "opacity/a", Value: "1.5", Category: types.CategoryOpacity}, types.ErrInvalidValue},
		{"z-index text", types.Token{Key: "z-index/a", Value: "abc", Category: types.CategoryZIndex}, types.ErrInvalidValue},
		{"bad key", types.Token{Key: "Color/A", Value: "#fff", Category: types.CategoryColor}, types.ErrInvalidKey},
		{"no category", types.Token{Key: "color/a", Value: "#fff"}, types.ErrInvalidCategory},
	}
	store := tokenStore(t, setupBackend(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Add(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	tokens, err := store.List(types.TokenFilter{})
	require.NoError(t, err)
	assert.Empty(t, tokens, "invalid tokens must not be persisted")
}

func TestTokens_GetNotFound(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	_, err := store.Get("color/missing")
	var nf *types.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, types.KindToken, nf.Kind)
	assert.Equal(t, "color/missing", nf.Ref)
}

func TestTokens_Update(t *testing.T) {
	tests := []struct {
		name    string
		initial types.Token
		patch   types.TokenPatch
		want    types.Token
		wantErr error
	}{
		{
			name:    "value only",
			initial: types.Token{Key: "spacing/b", Value: "8px", Category: types.CategorySpacing},
			patch:   types.TokenPatch{Value: ptr("16px")},
			want:    types.Token{Key: "spacing/b", Value: "16px", Category: types.CategorySpacing},
		},
		{
			name:    "category only revalidates prior value",
			initial: types.Token{Key: "x/size", Value: "8px", Category: types.CategorySpacing},
			patch:   types.TokenPatch{Category: ptr(types.CategoryRadius)},
			want:    types.Token{Key: "x/size", Value: "8px", Category: types.CategoryRadius},
		},
		{
			name:    "category change invalid for prior value",
			initial: types.Token{Key: "x/pct", Value: "50%", Category: types.CategorySpacing},
			patch:   types.TokenPatch{Category: ptr(types.CategoryRadius)},
			wantErr: types.ErrInvalidValue,
		},
		{
			name:    "value and category together",
			initial: types.Token{Key: "x/pair", Value: "8px", Category: types.CategorySpacing},
			patch:   types.TokenPatch{Value: ptr("0.5"), Category: ptr(types.CategoryOpacity)},
			want:    types.Token{Key: "x/pair", Value: "0.5", Category: types.CategoryOpacity},
		},
		{
			name:    "invalid value",
			initial: types.Token{Key: "opacity/a", Value: "0.5", Category: types.CategoryOpacity},
			patch:   types.TokenPatch{Value: ptr("2")},
			wantErr: types.ErrInvalidValue,
		},
		{
			name:    "description and deprecation",
			initial: types.Token{Key: "color/old", Value: "#000", Category: types.CategoryColor},
			patch:   types.TokenPatch{Description: ptr("legacy"), Deprecated: ptr(true), DeprecatedReason: ptr("use color/new")},
			want: types.Token{Key: "color/old", Value: "#000", Category: types.CategoryColor,
				Description: "legacy", Deprecated: true, DeprecatedReason: "use color/new"},
		},
		{
			name:    "aliases replaced",
			initial: types.Token{Key: "color/al", Value: "#000", Category: types.CategoryColor, Aliases: []string{"black"}},
			patch:   types.TokenPatch{Aliases: []string{"ink", "ink", ""}},
			want:    types.Token{Key: "color/al", Value: "#000", Category: types.CategoryColor, Aliases: []string{"ink"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tokenStore(t, setupBackend(t))
			before, err := store.Add(tt.initial)
			require.NoError(t, err)

			got, err := store.Update(tt.initial.Key, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				stored, getErr := store.Get(tt.initial.Key)
				require.NoError(t, getErr)
				assert.Equal(t, before, stored, "failed update must leave the token unchanged")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Value, got.Value)
			assert.Equal(t, tt.want.Category, got.Category)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.Equal(t, tt.want.Deprecated, got.Deprecated)
			assert.Equal(t, tt.want.DeprecatedReason, got.DeprecatedReason)
			if tt.want.Aliases != nil {
				assert.Equal(t, tt.want.Aliases, got.Aliases)
			}
			assert.Equal(t, 2, got.Revision)
			assert.Equal(t, before.CreatedAt, got.CreatedAt)
			assert.True(t, got.UpdatedAt.After(before.UpdatedAt))

			stored, err := store.Get(tt.initial.Key)
			require.NoError(t, err)
			assert.Equal(t, got, stored)
		})
	}
}

func TestTokens_UpdateEmptyPatch(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	before, err := store.Add(types.Token{Key: "color/a", Value: "#111", Category: types.CategoryColor})
	require.NoError(t, err)

	got, err := store.Update("color/a", types.TokenPatch{})
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestTokens_UpdateNotFound(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	_, err := store.Update("color/missing", types.TokenPatch{Value: ptr("#fff")})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTokens_Delete(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	_, err := store.Add(types.Token{Key: "color/a", Value: "#111", Category: types.CategoryColor})
	require.NoError(t, err)

	require.NoError(t, store.Delete("color/a"))
	_, err = store.Get("color/a")
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, store.Delete("color/a"), types.ErrNotFound)
}

func TestTokens_List(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	for _, tok := range []types.Token{
		{Key: "spacing/2", Value: "8px", Category: types.CategorySpacing},
		{Key: "color/b", Value: "#222", Category: types.CategoryColor},
		{Key: "color/a", Value: "#111", Category: types.CategoryColor, Deprecated: true},
		{Key: "spacing/1", Value: "4px", Category: types.CategorySpacing},
	} {
		_, err := store.Add(tok)
		require.NoError(t, err)
	}

	keys := func(tokens []*types.Token) []string {
		out := make([]string, len(tokens))
		for i, tok := range tokens {
			out[i] = tok.Key
		}
		return out
	}

	tests := []struct {
		name   string
		filter types.TokenFilter
		want   []string
	}{
		{"all", types.TokenFilter{}, []string{"color/a", "color/b", "spacing/1", "spacing/2"}},
		{"color", types.TokenFilter{Category: ptr(types.CategoryColor)}, []string{"color/a", "color/b"}},
		{"spacing", types.TokenFilter{Category: ptr(types.CategorySpacing)}, []string{"spacing/1", "spacing/2"}},
		{"motion", types.TokenFilter{Category: ptr(types.CategoryMotion)}, []string{}},
		{"no deprecated", types.TokenFilter{ExcludeDeprecated: true}, []string{"color/b", "spacing/1", "spacing/2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}

func TestTokens_ValidateAll(t *testing.T) {
	b := setupBackend(t)
	store := tokenStore(t, b)
	_, err := store.Add(types.Token{Key: "color/a", Value: "#111", Category: types.CategoryColor})
	require.NoError(t, err)
	_, err = store.Add(types.Token{Key: "color/old", Value: "#222", Category: types.CategoryColor, Deprecated: true})
	require.NoError(t, err)

	// Simulate a row written under an older, looser rule set.
	_, err = b.db.Exec(`INSERT INTO tokens (key, value, category, created_at, updated_at)
		VALUES ('opacity/legacy', '50%', 'opacity', '2024-01-01T00:00:00.000000000Z', '2024-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)

	report, err := store.ValidateAll()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Valid)
	require.Len(t, report.Invalid, 1)
	assert.Equal(t, "opacity/legacy", report.Invalid[0].Key)
	assert.Equal(t, "not a decimal number", report.Invalid[0].Reason)
	assert.Equal(t, []string{"color/old"}, report.Deprecated)
}

func TestTokens_AddClearsReasonWhenNotDeprecated(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	got, err := store.Add(types.Token{Key: "color/a", Value: "#111", Category: types.CategoryColor, DeprecatedReason: "stale"})
	require.NoError(t, err)
	assert.Empty(t, got.DeprecatedReason)
}

func TestTokens_AddNameCollision(t *testing.T) {
	tests := []struct {
		name   string
		token  types.Token
		reason string
	}{
		{"alias is another key", types.Token{Key: "color/b", Value: "#222", Category: types.CategoryColor, Aliases: []string{"color/a"}}, "alias is the key of another token"},
		{"alias is another alias", types.Token{Key: "color/b", Value: "#222", Category: types.CategoryColor, Aliases: []string{"brand"}}, "alias already used by color/a"},
		{"key is another alias", types.Token{Key: "brand", Value: "#222", Category: types.CategoryColor}, "already an alias of color/a"},
	}
	store := tokenStore(t, setupBackend(t))
	addTokens(t, store, types.Token{Key: "color/a", Value: "#111", Category: types.CategoryColor, Aliases: []string{"brand"}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Add(tt.token)
			var ke *types.KeyError
			require.ErrorAs(t, err, &ke)
			assert.Equal(t, tt.reason, ke.Reason)
			assert.ErrorIs(t, err, types.ErrInvalidKey)
		})
	}

	tokens, err := store.List(types.TokenFilter{})
	require.NoError(t, err)
	assert.Len(t, tokens, 1, "colliding tokens must not be persisted")
}

func TestTokens_UpdateAliasCollision(t *testing.T) {
	store := tokenStore(t, setupBackend(t))
	addTokens(t, store,
		types.Token{Key: "color/a", Value: "#111", Category: types.CategoryColor, Aliases: []string{"brand"}},
		types.Token{Key: "color/b", Value: "#222", Category: types.CategoryColor, Aliases: []string{"ink"}},
	)

	_, err := store.Update("color/b", types.TokenPatch{Aliases: []string{"ink", "color/a"}})
	assert.ErrorIs(t, err, types.ErrInvalidKey)
	_, err = store.Update("color/b", types.TokenPatch{Aliases: []string{"brand"}})
	assert.ErrorIs(t, err, types.ErrInvalidKey)

	got, err := store.Get("color/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"ink"}, got.Aliases)
	assert.Equal(t, 1, got.Revision)

	// A token keeps its own aliases across updates.
	got, err = store.Update("color/a", types.TokenPatch{Value: ptr("#333")})
	require.NoError(t, err)
	assert.Equal(t, []string{"brand"}, got.Aliases)
}
