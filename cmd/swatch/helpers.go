// Shared helpers for swatch CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// categoryFilter parses an optional --category flag into a list filter.
func categoryFilter(name string, excludeDeprecated bool) (types.TokenFilter, error) {
	filter := types.TokenFilter{ExcludeDeprecated: excludeDeprecated}
	if name == "" {
		return filter, nil
	}
	c, err := types.ParseCategory(name)
	if err != nil {
		return filter, err
	}
	filter.Category = &c
	return filter, nil
}

func categoryUsage() string {
	return "token category: " + strings.Join(types.CategoryNames(), ", ")
}
