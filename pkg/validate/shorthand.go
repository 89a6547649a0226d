package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var lengthRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d+)?|\.\d+)(px|rem|em)$`)

// isLength reports whether f is a CSS length in px, rem or em, or a bare 0.
func isLength(f string) bool {
	return f == "0" || lengthRe.MatchString(f)
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

var borderWidthKeywords = map[string]bool{"thin": true, "medium": true, "thick": true}

// shadow accepts a comma-separated list of layers, each with an optional
// "inset", two to four lengths (offset-x offset-y [blur [spread]]) and
// exactly one color.
func shadow(v string) string {
	layers, ok := splitTopLevel(v, ',')
	if !ok {
		return "unbalanced parentheses"
	}
	for i, layer := range layers {
		if reason := shadowLayer(strings.TrimSpace(layer)); reason != "" {
			if len(layers) > 1 {
				return fmt.Sprintf("layer %d: %s", i+1, reason)
			}
			return reason
		}
	}
	return ""
}

func shadowLayer(layer string) string {
	if layer == "" {
		return "empty shadow layer"
	}
	fields, _ := fieldsTopLevel(layer)
	var lengths, colors, insets int
	for _, f := range fields {
		switch {
		case f == "inset":
			insets++
		case isLength(f):
			lengths++
		default:
			if reason := color(f); reason != "" {
				return fmt.Sprintf("unrecognised shadow component %q", f)
			}
			colors++
		}
	}
	switch {
	case insets > 1:
		return "inset given more than once"
	case lengths < 2 || lengths > 4:
		return fmt.Sprintf("want 2 to 4 lengths (offset-x offset-y [blur [spread]]), got %d", lengths)
	case colors != 1:
		return fmt.Sprintf("want exactly one color, got %d", colors)
	}
	return ""
}

// border accepts a width, a style and a color in any order. The color may
// be a var() reference.
func border(v string) string {
	fields, ok := fieldsTopLevel(v)
	if !ok {
		return "unbalanced parentheses"
	}
	if len(fields) != 3 {
		return fmt.Sprintf("want width, style and color, got %d component(s)", len(fields))
	}
	var width, style, col int
	for _, f := range fields {
		switch {
		case borderStyles[f]:
			style++
		case borderWidthKeywords[f] || isLength(f):
			if strings.HasPrefix(f, "-") {
				return "width must not be negative"
			}
			width++
		default:
			if reason := color(f); reason != "" {
				return fmt.Sprintf("color %q: %s", f, reason)
			}
			col++
		}
	}
	if width != 1 || style != 1 || col != 1 {
		return "want exactly one width, one style and one color"
	}
	return ""
}

// splitTopLevel splits s on sep outside parentheses. ok is false when the
// parentheses do not balance.
func splitTopLevel(s string, sep rune) (parts []string, ok bool) {
	depth, start := 0, 0
	for i, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, false
			}
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, false
	}
	return append(parts, s[start:]), true
}

// fieldsTopLevel splits s on whitespace outside parentheses.
func fieldsTopLevel(s string) (fields []string, ok bool) {
	depth := 0
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, false
			}
		case unicode.IsSpace(r) && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return fields, depth == 0
}
