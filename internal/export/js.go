package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

const jsHeader = "// Design tokens generated by swatch. DO NOT EDIT.\n// Regenerate with: swatch export-js\n"

// JS renders tokens as an ES module: one named export per token and an
// aggregate tokens object keyed by category.
func JS(tokens []*types.Token) (string, error) {
	groups := groupByCategory(tokens)
	names := nameSet{"tokens": "(aggregate export)"}

	var sb strings.Builder
	sb.WriteString(jsHeader)
	for _, g := range groups {
		fmt.Fprintf(&sb, "\n// %s\n", strings.ToUpper(g.category.String()))
		for _, t := range g.tokens {
			id := Camel(t.Key)
			if err := names.claim(id, t.Key); err != nil {
				return "", err
			}
			if t.Description != "" {
				fmt.Fprintf(&sb, "/** %s */\n", comment(t.Description))
			}
			if t.Deprecated {
				fmt.Fprintf(&sb, "/** @deprecated %s */\n", comment(t.DeprecatedReason))
			}
			fmt.Fprintf(&sb, "export const %s = %s;\n", id, jsString(t.Value))
		}
	}

	sb.WriteString("\n/** All tokens grouped by category */\nexport const tokens = {\n")
	for _, g := range groups {
		fmt.Fprintf(&sb, "  %s: {\n", jsString(g.category.String()))
		for _, t := range g.tokens {
			fmt.Fprintf(&sb, "    %s: %s,\n", Camel(t.Key), jsString(t.Value))
		}
		sb.WriteString("  },\n")
	}
	sb.WriteString("};\n")
	return sb.String(), nil
}

// jsString quotes s as a JSON string literal, which is valid JavaScript.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
