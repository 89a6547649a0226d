package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	dimensionRe = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d+)?|\.\d+))([A-Za-z%]*)$`)
	decimalRe   = regexp.MustCompile(`^(?:\d+(?:\.\d+)?|\.\d+)$`)
	integerRe   = regexp.MustCompile(`^[+-]?\d+$`)
)

// dimension accepts a numeric literal immediately followed by one of units.
func dimension(v string, units []string, allowNegative bool) string {
	m := dimensionRe.FindStringSubmatch(v)
	if m == nil {
		return fmt.Sprintf("not a numeric literal with unit (%s)", strings.Join(units, ", "))
	}
	unit := m[2]
	if unit == "" {
		return fmt.Sprintf("missing unit (want %s)", strings.Join(units, ", "))
	}
	if !slices.Contains(units, unit) {
		return fmt.Sprintf("unit %q not allowed (want %s)", unit, strings.Join(units, ", "))
	}
	if !allowNegative && strings.HasPrefix(m[1], "-") {
		return "must not be negative"
	}
	return ""
}

// opacity accepts a plain decimal in [0, 1].
func opacity(v string) string {
	if !decimalRe.MatchString(v) {
		return "not a decimal number"
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "not a decimal number"
	}
	if n > 1 {
		return fmt.Sprintf("%s out of range [0, 1]", v)
	}
	return ""
}

// zIndex accepts a signed 32-bit integer.
func zIndex(v string) string {
	if !integerRe.MatchString(v) {
		return "not an integer"
	}
	if _, err := strconv.ParseInt(v, 10, 32); err != nil {
		return "out of 32-bit integer range"
	}
	return ""
}
