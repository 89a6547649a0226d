package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

func TestParse_W3C(t *testing.T) {
	doc := `{
  "color": {
    "$type": "color",
    "brand": {
      "primary": {"$value": "#FF1D6C", "$description": "Primary"},
      "legacy": {"$value": "#000000", "$deprecated": "use color/brand/primary"}
    }
  },
  "motion": {
    "fast": {"$value": "150ms", "$type": "duration"}
  },
  "size": {
    "$type": "fontSize",
    "sm": {"$value": "0.875rem"}
  },
  "opacity": {
    "half": {"$value": 0.5}
  }
}`
	items, err := Parse(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []types.ImportItem{
		{Key: "color/brand/legacy", Value: "#000000", Category: "color", Deprecated: true, DeprecatedReason: "use color/brand/primary"},
		{Key: "color/brand/primary", Value: "#FF1D6C", Category: "color", Description: "Primary"},
		{Key: "motion/fast", Value: "150ms", Category: "motion"},
		{Key: "opacity/half", Value: "0.5", Category: "opacity"},
		{Key: "size/sm", Value: "0.875rem", Category: "typography"},
	}, items)
}

func TestParse_FlatWrapped(t *testing.T) {
	doc := `{"version": "1", "tokens": {
  "color/a": {"value": "#111111", "category": "color", "description": "a"},
  "spacing/b": {"value": "8px", "category": "spacing", "aliases": ["gap/b"]},
  "thing/c": {"value": "1", "category": "gradient"}
}}`
	items, err := Parse(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, types.ImportItem{Key: "color/a", Value: "#111111", Category: "color", Description: "a"}, items[0])
	assert.Equal(t, []string{"gap/b"}, items[1].Aliases)
	assert.Equal(t, "gradient", items[2].Category, "unknown categories pass through for the store to reject")
}

func TestParse_List(t *testing.T) {
	doc := `[{"key": "color/a", "value": "#111", "category": "color"}, {"key": "z-index/top", "value": 10}]`
	items, err := Parse(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "10", items[1].Value)
	assert.Equal(t, "z-index", items[1].Category, "category inferred from first key segment")
}

func TestParse_YAML(t *testing.T) {
	doc := `
tokens:
  spacing:
    $type: spacing
    "4":
      $value: 16px
  z-index:
    modal:
      value: 1300
      deprecated: true
      deprecated_reason: replaced
  radius:
    sm:
      $value: 4px
      $type: borderRadius
`
	items, err := Parse(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []types.ImportItem{
		{Key: "radius/sm", Value: "4px", Category: "radius"},
		{Key: "spacing/4", Value: "16px", Category: "spacing"},
		{Key: "z-index/modal", Value: "1300", Category: "z-index", Deprecated: true, DeprecatedReason: "replaced"},
	}, items)
}

func TestParse_YAMLEmpty(t *testing.T) {
	items, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParse_JSONL(t *testing.T) {
	doc := `{"key": "color/a", "value": "#111", "category": "color"}

{"key": "opacity/x", "value": 0.25, "category": "opacity", "description": "quarter"}
`
	items, err := Parse(strings.NewReader(doc), FormatJSONL)
	require.NoError(t, err)
	assert.Equal(t, []types.ImportItem{
		{Key: "color/a", Value: "#111", Category: "color"},
		{Key: "opacity/x", Value: "0.25", Category: "opacity", Description: "quarter"},
	}, items)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
		want   string
	}{
		{"malformed json", FormatJSON, `{"color":`, "decoding JSON"},
		{"object value", FormatJSON, `{"color/a": {"$value": {"r": 1}}}`, "color/a: value: want a string or number"},
		{"bool value", FormatJSON, `[{"key": "a", "value": true}]`, "item 1: value"},
		{"scalar child", FormatJSON, `{"color": {"a": "#fff"}}`, "color/a: want a token or group object"},
		{"top-level scalar", FormatJSON, `"x"`, "top level"},
		{"list without key", FormatJSON, `[{"value": "#fff"}]`, "no key"},
		{"missing value", FormatJSON, `[{"key": "a"}]`, "no value"},
		{"bad deprecated", FormatJSON, `[{"key": "a", "value": "1", "deprecated": 3}]`, "deprecated"},
		{"malformed jsonl line", FormatJSONL, "{\"key\": \"a\", \"value\": \"1\"}\n{oops\n", "line 2"},
		{"malformed yaml", FormatYAML, "a: [", "decoding YAML"},
		{"unknown format", Format("toml"), "", "unknown import format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"tokens.json", FormatJSON, false},
		{"tokens.YAML", FormatYAML, false},
		{"dir/tokens.yml", FormatYAML, false},
		{"tokens.jsonl", FormatJSONL, false},
		{"tokens.ndjson", FormatJSONL, false},
		{"tokens.toml", "", true},
		{"tokens", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"key": "color/a", "value": "#111", "category": "color"}`+"\n"), 0o644))

	items, err := ParseFile(path, "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.json"), "")
	assert.Error(t, err)

	_, err = ParseFile(path, FormatJSON)
	require.Error(t, err, "a bare token object is not a token tree")
	assert.Contains(t, err.Error(), "parsing "+path)
}
