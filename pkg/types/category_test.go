package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 10)
	assert.Equal(t, CategoryColor, cats[0])
	assert.Equal(t, CategoryBorder, cats[len(cats)-1])
	assert.Equal(t, []string{
		"color", "spacing", "typography", "radius", "shadow",
		"opacity", "z-index", "breakpoint", "motion", "border",
	}, CategoryNames())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"color", CategoryColor, false},
		{"Z-Index", CategoryZIndex, false},
		{"motion", CategoryMotion, false},
		{"weird", 0, true},
		{"", 0, true},
		{" color", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "z-index", CategoryZIndex.String())
	assert.Equal(t, "Category(0)", Category(0).String())
	assert.False(t, Category(0).Valid())
	assert.False(t, Category(42).Valid())
}

func TestCategoryJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Category `json:"c"`
	}{CategoryBreakpoint})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"breakpoint"}`, string(data))

	var out struct {
		C Category `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"radius"}`), &out))
	assert.Equal(t, CategoryRadius, out.C)

	assert.Error(t, json.Unmarshal([]byte(`{"c":"bogus"}`), &out))

	_, err = json.Marshal(struct{ C Category }{Category(0)})
	assert.Error(t, err)
}
