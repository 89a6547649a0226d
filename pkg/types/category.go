package types

import (
	"fmt"
	"strings"
)

// Category is the closed classification of a token. Each category maps to
// exactly one validation rule in package validate; adding a category means
// adding a constant here and a case to every switch over Category.
type Category uint8

// Token categories. The zero value is not a valid category.
const (
	CategoryColor Category = iota + 1
	CategorySpacing
	CategoryTypography
	CategoryRadius
	CategoryShadow
	CategoryOpacity
	CategoryZIndex
	CategoryBreakpoint
	CategoryMotion
	CategoryBorder
)

var categoryNames = [...]string{
	CategoryColor:      "color",
	CategorySpacing:    "spacing",
	CategoryTypography: "typography",
	CategoryRadius:     "radius",
	CategoryShadow:     "shadow",
	CategoryOpacity:    "opacity",
	CategoryZIndex:     "z-index",
	CategoryBreakpoint: "breakpoint",
	CategoryMotion:     "motion",
	CategoryBorder:     "border",
}

// Categories returns every category in enumeration order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames)-1)
	for c := CategoryColor; int(c) < len(categoryNames); c++ {
		out = append(out, c)
	}
	return out
}

// CategoryNames returns the names of all categories in enumeration order.
func CategoryNames() []string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return names
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c >= CategoryColor && int(c) < len(categoryNames)
}

// String returns the category name, e.g. "z-index".
func (c Category) String() string {
	if c.Valid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory maps a category name to its Category. Matching is
// case-insensitive; surrounding whitespace is not accepted.
// Returns ErrInvalidCategory for unknown names.
func ParseCategory(name string) (Category, error) {
	lower := strings.ToLower(name)
	for _, c := range Categories() {
		if categoryNames[c] == lower {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q (valid: %s)", ErrInvalidCategory, name, strings.Join(CategoryNames(), ", "))
}

// MarshalText encodes the category as its name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
