package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// DefaultPrefix is the CSS custom property prefix when none is configured.
const DefaultPrefix = "ds"

// CSSOptions controls CSS rendering.
type CSSOptions struct {
	// Prefix is prepended to every variable, with or without the leading
	// "--". Empty means DefaultPrefix.
	Prefix string
}

var (
	hex6Re   = regexp.MustCompile(`^#([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})?$`)
	hex3Re   = regexp.MustCompile(`^#([0-9a-fA-F])([0-9a-fA-F])([0-9a-fA-F])$`)
	rgbNumRe = regexp.MustCompile(`^(?i:rgba?)\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,[^)]*)?\)$`)
)

// CSS renders tokens as a :root block of custom properties grouped by
// category. Color tokens with numeric channels also get a "-rgb" variable;
// each alias becomes a variable that references its token.
func CSS(tokens []*types.Token, opts CSSOptions) (string, error) {
	if len(tokens) == 0 {
		return "/* No tokens found */\n", nil
	}
	prefix := cssPrefix(opts.Prefix)
	names := nameSet{}

	var sb strings.Builder
	sb.WriteString(":root {\n")
	for i, g := range groupByCategory(tokens) {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "  /* %s */\n", strings.ToUpper(g.category.String()))
		for _, t := range g.tokens {
			name := prefix + "-" + Slug(t.Key)
			if err := names.claim(name, t.Key); err != nil {
				return "", err
			}
			if t.Description != "" {
				fmt.Fprintf(&sb, "  /* %s */\n", comment(t.Description))
			}
			dep := ""
			if t.Deprecated {
				dep = " /* @deprecated */"
			}
			fmt.Fprintf(&sb, "  %s: %s;%s\n", name, t.Value, dep)

			if t.Category == types.CategoryColor {
				if channels, ok := rgbChannels(t.Value); ok {
					if err := names.claim(name+"-rgb", t.Key); err != nil {
						return "", err
					}
					fmt.Fprintf(&sb, "  %s-rgb: %s;\n", name, channels)
				}
			}
			for _, alias := range t.Aliases {
				aliasName := prefix + "-" + Slug(alias)
				if err := names.claim(aliasName, alias); err != nil {
					return "", err
				}
				fmt.Fprintf(&sb, "  %s: var(%s); /* alias */\n", aliasName, name)
			}
		}
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func cssPrefix(p string) string {
	p = strings.TrimPrefix(strings.TrimSpace(p), "--")
	if p == "" {
		p = DefaultPrefix
	}
	return "--" + p
}

// rgbChannels returns "r, g, b" for hex and numeric rgb()/rgba() colors.
func rgbChannels(v string) (string, bool) {
	var parts []string
	switch {
	case hex6Re.MatchString(v):
		parts = hex6Re.FindStringSubmatch(v)[1:4]
	case hex3Re.MatchString(v):
		for _, d := range hex3Re.FindStringSubmatch(v)[1:] {
			parts = append(parts, d+d)
		}
	case rgbNumRe.MatchString(v):
		return strings.Join(rgbNumRe.FindStringSubmatch(v)[1:], ", "), true
	default:
		return "", false
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return "", false
		}
		out[i] = strconv.FormatUint(n, 10)
	}
	return strings.Join(out, ", "), true
}
