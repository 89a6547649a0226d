// Package validate checks token values against their category rules and
// token keys against the key grammar. Every function is pure: the same
// input always yields the same result and nothing is read or written.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Value checks value against the rule for category. It returns a
// *types.ValidationError naming the failed check, or an error wrapping
// types.ErrInvalidCategory when category is not defined.
func Value(category types.Category, value string) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %s", types.ErrInvalidCategory, category)
	}
	reason := check(category, value)
	if reason == "" {
		return nil
	}
	return &types.ValidationError{Category: category, Value: value, Reason: reason}
}

// check dispatches to the rule for category and returns the failure reason,
// or "" when the value conforms.
func check(category types.Category, value string) string {
	if value == "" {
		return "value is required"
	}
	if strings.TrimSpace(value) != value {
		return "leading or trailing whitespace"
	}
	switch category {
	case types.CategoryColor:
		return color(value)
	case types.CategorySpacing, types.CategoryTypography:
		return dimension(value, []string{"px", "rem", "em", "%"}, true)
	case types.CategoryRadius:
		return dimension(value, []string{"px", "rem"}, false)
	case types.CategoryShadow:
		return shadow(value)
	case types.CategoryOpacity:
		return opacity(value)
	case types.CategoryZIndex:
		return zIndex(value)
	case types.CategoryBreakpoint:
		return dimension(value, []string{"px"}, false)
	case types.CategoryMotion:
		return dimension(value, []string{"ms"}, false)
	case types.CategoryBorder:
		return border(value)
	}
	return "no rule for category"
}

// Token checks the key, every alias and the (value, category) pair.
func Token(t types.Token) error {
	if err := Key(t.Key); err != nil {
		return err
	}
	for _, alias := range t.Aliases {
		if err := Key(alias); err != nil {
			return fmt.Errorf("alias: %w", err)
		}
		if alias == t.Key {
			return &types.KeyError{Key: alias, Reason: "alias repeats the token key"}
		}
	}
	return Value(t.Category, t.Value)
}

var keyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9./-]*$`)

// Key checks a hierarchical token key such as "color/brand/blue": lowercase
// letters, digits, '-', '.' and '/', starting with a letter or digit, with
// no empty path segment.
func Key(key string) error {
	switch {
	case key == "":
		return &types.KeyError{Key: key, Reason: "key is required"}
	case !keyRe.MatchString(key):
		return &types.KeyError{Key: key, Reason: "only lowercase letters, digits, '-', '.' and '/' are allowed, starting with a letter or digit"}
	case strings.Contains(key, "//") || strings.HasSuffix(key, "/"):
		return &types.KeyError{Key: key, Reason: "empty path segment"}
	}
	return nil
}
