// Package export renders token sets into CSS custom properties, ES modules,
// Tailwind configuration and JSON snapshot documents. Renderers are pure:
// they read the tokens they are given and never touch the store.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Slug turns a token key into a CSS identifier fragment:
// "color/brand.primary" becomes "color-brand-primary".
func Slug(key string) string {
	r := strings.NewReplacer("/", "-", ".", "-", " ", "-")
	return r.Replace(strings.ToLower(key))
}

var camelSplitRe = regexp.MustCompile(`[-/. ]+`)

// jsIdentRe matches identifiers that need no prefix in an ES module.
var jsIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Camel turns a token key into a JS identifier: "color/brand-primary"
// becomes "colorBrandPrimary". Keys starting with a digit get a leading
// underscore.
func Camel(key string) string {
	parts := camelSplitRe.Split(key, -1)
	var sb strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		p = strings.ToLower(p)
		if i > 0 && sb.Len() > 0 {
			r, size := utf8.DecodeRuneInString(p)
			p = string(unicode.ToUpper(r)) + p[size:]
		}
		sb.WriteString(p)
	}
	id := sb.String()
	if !jsIdentRe.MatchString(id) {
		id = "_" + id
	}
	return id
}

// groupByCategory splits tokens by category in enumeration order, keeping
// the input order within each group.
func groupByCategory(tokens []*types.Token) []categoryGroup {
	byCat := make(map[types.Category][]*types.Token)
	for _, t := range tokens {
		byCat[t.Category] = append(byCat[t.Category], t)
	}
	var groups []categoryGroup
	for _, c := range types.Categories() {
		if ts := byCat[c]; len(ts) > 0 {
			groups = append(groups, categoryGroup{category: c, tokens: ts})
		}
	}
	return groups
}

type categoryGroup struct {
	category types.Category
	tokens   []*types.Token
}

// nameSet detects two keys that render to the same output name.
type nameSet map[string]string

func (s nameSet) claim(name, key string) error {
	if other, ok := s[name]; ok && other != key {
		return fmt.Errorf("keys %q and %q both render as %q", other, key, name)
	}
	s[name] = key
	return nil
}

// comment makes s safe inside a /* */ block comment.
func comment(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
