package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// tailwindSections maps each category to its theme.extend section, in
// output order.
var tailwindSections = []struct {
	category types.Category
	section  string
}{
	{types.CategoryColor, "colors"},
	{types.CategorySpacing, "spacing"},
	{types.CategoryTypography, "fontSize"},
	{types.CategoryRadius, "borderRadius"},
	{types.CategoryShadow, "boxShadow"},
	{types.CategoryOpacity, "opacity"},
	{types.CategoryZIndex, "zIndex"},
	{types.CategoryBreakpoint, "screens"},
	{types.CategoryMotion, "transitionDuration"},
	{types.CategoryBorder, "borderWidth"},
}

// Tailwind renders tokens as a tailwind.config.js module extending the
// theme. Entry keys are the key slug without its leading category segment.
// Border tokens contribute their width component.
func Tailwind(tokens []*types.Token) (string, error) {
	entries := make(map[types.Category]map[string]string)
	owners := make(map[types.Category]nameSet)
	for _, t := range tokens {
		value := t.Value
		if t.Category == types.CategoryBorder {
			var ok bool
			if value, ok = borderWidth(t.Value); !ok {
				continue
			}
		}
		if entries[t.Category] == nil {
			entries[t.Category] = make(map[string]string)
			owners[t.Category] = nameSet{}
		}
		name := TailwindKey(t.Key, t.Category)
		if err := owners[t.Category].claim(name, t.Key); err != nil {
			return "", err
		}
		entries[t.Category][name] = value
	}

	var sb strings.Builder
	sb.WriteString("/** @type {import('tailwindcss').Config} */\n")
	sb.WriteString("/** Generated by swatch. DO NOT EDIT. */\n")
	sb.WriteString("module.exports = {\n  theme: {\n    extend: {\n")
	for _, s := range tailwindSections {
		vals := entries[s.category]
		if len(vals) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "      %s: {\n", s.section)
		keys := make([]string, 0, len(vals))
		for k := range vals {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "        %s: %s,\n", singleQuote(k), singleQuote(vals[k]))
		}
		sb.WriteString("      },\n")
	}
	sb.WriteString("    },\n  },\n};\n")
	return sb.String(), nil
}

// TailwindKey returns the theme entry name for key: its slug with the
// leading category segment removed, so "color/brand/primary" becomes
// "brand-primary". A key that is only the category name keeps "DEFAULT".
func TailwindKey(key string, category types.Category) string {
	segments := strings.Split(key, "/")
	if len(segments) > 0 && strings.EqualFold(segments[0], category.String()) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "DEFAULT"
	}
	return Slug(strings.Join(segments, "/"))
}

// borderWidth extracts the width component of a border shorthand,
// skipping anything inside a color function.
func borderWidth(v string) (string, bool) {
	depth := 0
	for _, f := range strings.Fields(v) {
		inside := depth > 0 || strings.Contains(f, "(")
		depth += strings.Count(f, "(") - strings.Count(f, ")")
		if inside {
			continue
		}
		switch {
		case f == "thin" || f == "medium" || f == "thick":
			return f, true
		case f[0] >= '0' && f[0] <= '9', f[0] == '.':
			return f, true
		}
	}
	return "", false
}

func singleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
