package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

func sampleTokens() []*types.Token {
	return []*types.Token{
		{Key: "color/brand/primary", Value: "#FF1D6C", Category: types.CategoryColor, Description: "Primary brand color", Aliases: []string{"brand"}},
		{Key: "color/overlay", Value: "rgba(0, 0, 0, 0.5)", Category: types.CategoryColor},
		{Key: "color/ref", Value: "var(--ds-color-brand-primary)", Category: types.CategoryColor},
		{Key: "spacing/4", Value: "16px", Category: types.CategorySpacing},
		{Key: "z-index/modal", Value: "1300", Category: types.CategoryZIndex, Deprecated: true, DeprecatedReason: "use z-index/dialog"},
		{Key: "border/default", Value: "1px solid #E5E7EB", Category: types.CategoryBorder},
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"color/brand/primary": "color-brand-primary",
		"typography/size.sm":  "typography-size-sm",
		"Spacing/4":           "spacing-4",
		"a b":                 "a-b",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestCamel(t *testing.T) {
	tests := map[string]string{
		"color/brand/primary": "colorBrandPrimary",
		"color/brand-primary": "colorBrandPrimary",
		"typography/size.2xl": "typographySize2xl",
		"z-index/modal":       "zIndexModal",
		"2xl":                 "_2xl",
		"/color//a":           "colorA",
	}
	for in, want := range tests {
		assert.Equal(t, want, Camel(in), in)
	}
}

func TestCSS(t *testing.T) {
	out, err := CSS(sampleTokens(), CSSOptions{})
	require.NoError(t, err)

	want := `:root {
  /* COLOR */
  /* Primary brand color */
  --ds-color-brand-primary: #FF1D6C;
  --ds-color-brand-primary-rgb: 255, 29, 108;
  --ds-brand: var(--ds-color-brand-primary); /* alias */
  --ds-color-overlay: rgba(0, 0, 0, 0.5);
  --ds-color-overlay-rgb: 0, 0, 0;
  --ds-color-ref: var(--ds-color-brand-primary);

  /* SPACING */
  --ds-spacing-4: 16px;

  /* Z-INDEX */
  --ds-z-index-modal: 1300; /* @deprecated */

  /* BORDER */
  --ds-border-default: 1px solid #E5E7EB;
}
`
	assert.Equal(t, want, out)
}

func TestCSS_Prefix(t *testing.T) {
	tokens := []*types.Token{{Key: "color/a", Value: "#abc", Category: types.CategoryColor}}
	for _, p := range []string{"br", "--br", " br "} {
		out, err := CSS(tokens, CSSOptions{Prefix: p})
		require.NoError(t, err)
		assert.Contains(t, out, "  --br-color-a: #abc;\n", p)
		assert.Contains(t, out, "  --br-color-a-rgb: 170, 187, 204;\n", p)
	}
}

func TestCSS_Empty(t *testing.T) {
	out, err := CSS(nil, CSSOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/* No tokens found */\n", out)
}

func TestCSS_Collision(t *testing.T) {
	tokens := []*types.Token{
		{Key: "color/a.b", Value: "#000", Category: types.CategoryColor},
		{Key: "color/a/b", Value: "#fff", Category: types.CategoryColor},
	}
	_, err := CSS(tokens, CSSOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--ds-color-a-b")
}

func TestJS(t *testing.T) {
	out, err := JS(sampleTokens()[:5])
	require.NoError(t, err)

	assert.Contains(t, out, "/** Primary brand color */\nexport const colorBrandPrimary = \"#FF1D6C\";\n")
	assert.Contains(t, out, "export const spacing4 = \"16px\";\n")
	assert.Contains(t, out, "/** @deprecated use z-index/dialog */\nexport const zIndexModal = \"1300\";\n")
	assert.Contains(t, out, "export const tokens = {\n  \"color\": {\n    colorBrandPrimary: \"#FF1D6C\",\n")
	assert.Contains(t, out, "  \"z-index\": {\n    zIndexModal: \"1300\",\n  },\n};\n")
	assert.NotContains(t, out, "<", "no HTML escaping")

	again, err := JS(sampleTokens()[:5])
	require.NoError(t, err)
	assert.Equal(t, out, again, "output must be deterministic")
}

func TestJS_Collision(t *testing.T) {
	tokens := []*types.Token{
		{Key: "color/brand-primary", Value: "#000", Category: types.CategoryColor},
		{Key: "color/brand/primary", Value: "#fff", Category: types.CategoryColor},
	}
	_, err := JS(tokens)
	assert.Error(t, err)

	_, err = JS([]*types.Token{{Key: "tokens", Value: "#000", Category: types.CategoryColor}})
	assert.Error(t, err, "a token may not shadow the aggregate export")
}

func TestTailwind(t *testing.T) {
	tokens := append(sampleTokens(),
		&types.Token{Key: "breakpoint/md", Value: "768px", Category: types.CategoryBreakpoint},
		&types.Token{Key: "motion/fast", Value: "150ms", Category: types.CategoryMotion},
		&types.Token{Key: "radius", Value: "4px", Category: types.CategoryRadius},
		&types.Token{Key: "brand/quote", Value: "#000", Category: types.CategoryColor},
	)
	out, err := Tailwind(tokens)
	require.NoError(t, err)

	want := `/** @type {import('tailwindcss').Config} */
/** Generated by swatch. DO NOT EDIT. */
module.exports = {
  theme: {
    extend: {
      colors: {
        'brand-primary': '#FF1D6C',
        'brand-quote': '#000',
        'overlay': 'rgba(0, 0, 0, 0.5)',
        'ref': 'var(--ds-color-brand-primary)',
      },
      spacing: {
        '4': '16px',
      },
      borderRadius: {
        'DEFAULT': '4px',
      },
      zIndex: {
        'modal': '1300',
      },
      screens: {
        'md': '768px',
      },
      transitionDuration: {
        'fast': '150ms',
      },
      borderWidth: {
        'default': '1px',
      },
    },
  },
};
`
	assert.Equal(t, want, out)
}

func TestTailwind_Collision(t *testing.T) {
	tokens := []*types.Token{
		{Key: "color/brand-a", Value: "#000", Category: types.CategoryColor},
		{Key: "color/brand/a", Value: "#fff", Category: types.CategoryColor},
	}
	_, err := Tailwind(tokens)
	assert.Error(t, err)
}

func TestBorderWidth(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1px solid #000", "1px", true},
		{"solid rgb(0, 0, 0) 2px", "2px", true},
		{"thick dashed var(--c)", "thick", true},
		{"solid #000", "", false},
	}
	for _, tt := range tests {
		got, ok := borderWidth(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSnapshotJSON(t *testing.T) {
	snap := &types.Snapshot{
		SnapshotID: "0190-abc",
		Version:    "v1",
		Name:       "Initial",
		CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries: []types.SnapshotEntry{
			{Key: "color/a", Value: "#111", Category: types.CategoryColor},
			{Key: "color/b", Value: "#222", Category: types.CategoryColor, Deprecated: true},
			{Key: "spacing/1", Value: "4px", Category: types.CategorySpacing},
		},
	}
	data, err := SnapshotJSON(snap)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "v1", doc.Version)
	assert.Equal(t, 3, doc.Metadata.Count)
	assert.Equal(t, map[string]int{"color": 2, "spacing": 1}, doc.Metadata.Categories)
	assert.Equal(t, 1, doc.Metadata.DeprecatedCount)
	assert.Equal(t, snap.Entries, doc.Tokens)

	empty, err := SnapshotJSON(&types.Snapshot{SnapshotID: "x", Version: "v0"})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"tokens": []`)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.css")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	assert.Error(t, WriteFile(filepath.Join(dir, "missing", "out.css"), []byte("x")))
}
