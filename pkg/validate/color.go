package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexDigitsRe = regexp.MustCompile(`^#[0-9a-fA-F]*$`)
	varRefRe    = regexp.MustCompile(`^var\(\s*--[A-Za-z0-9_-]+\s*(,.*)?\)$`)
	channelRe   = regexp.MustCompile(`^\d+(\.\d+)?%?$`)
	hueRe       = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)(deg)?$`)
	percentRe   = regexp.MustCompile(`^\d+(\.\d+)?%$`)
	alphaRe     = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)%?$`)
)

const colorForms = "want #RGB, #RRGGBB, #RRGGBBAA, rgb(), rgba(), hsl(), hsla() or var(--token)"

// color accepts hex, rgb()/rgba(), hsl()/hsla() and var() references.
func color(v string) string {
	switch {
	case strings.HasPrefix(v, "#"):
		return hexColor(v)
	case strings.HasPrefix(v, "var("):
		if !varRefRe.MatchString(v) {
			return "malformed reference, want var(--token-name)"
		}
		return ""
	}

	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return "unrecognised color, " + colorForms
	}
	args := strings.Split(v[open+1:len(v)-1], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	switch fn := strings.ToLower(v[:open]); fn {
	case "rgb":
		return rgbArgs(fn, args, false)
	case "rgba":
		return rgbArgs(fn, args, true)
	case "hsl":
		return hslArgs(fn, args, false)
	case "hsla":
		return hslArgs(fn, args, true)
	default:
		return fmt.Sprintf("unsupported color function %q, %s", fn, colorForms)
	}
}

func hexColor(v string) string {
	if !hexDigitsRe.MatchString(v) {
		return "hex color contains non-hex characters"
	}
	switch len(v) - 1 {
	case 3, 6, 8:
		return ""
	}
	return fmt.Sprintf("hex color must have 3, 6 or 8 digits, got %d", len(v)-1)
}

func rgbArgs(fn string, args []string, alpha bool) string {
	want := 3
	if alpha {
		want = 4
	}
	if len(args) != want {
		return fmt.Sprintf("%s() expects %d comma-separated arguments, got %d", fn, want, len(args))
	}
	for _, a := range args[:3] {
		if !channelRe.MatchString(a) {
			return fmt.Sprintf("%s() channel %q is not a number or percentage", fn, a)
		}
		limit := 255.0
		if strings.HasSuffix(a, "%") {
			limit = 100
		}
		if n, _ := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64); n > limit {
			return fmt.Sprintf("%s() channel %s out of range [0, %g]", fn, a, limit)
		}
	}
	if alpha {
		return alphaArg(fn, args[3])
	}
	return ""
}

func hslArgs(fn string, args []string, alpha bool) string {
	want := 3
	if alpha {
		want = 4
	}
	if len(args) != want {
		return fmt.Sprintf("%s() expects %d comma-separated arguments, got %d", fn, want, len(args))
	}
	if !hueRe.MatchString(args[0]) {
		return fmt.Sprintf("%s() hue %q is not a number of degrees", fn, args[0])
	}
	for _, a := range args[1:3] {
		if !percentRe.MatchString(a) {
			return fmt.Sprintf("%s() saturation and lightness must be percentages, got %q", fn, a)
		}
		if n, _ := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64); n > 100 {
			return fmt.Sprintf("%s() percentage %s out of range [0%%, 100%%]", fn, a)
		}
	}
	if alpha {
		return alphaArg(fn, args[3])
	}
	return ""
}

func alphaArg(fn, a string) string {
	if !alphaRe.MatchString(a) {
		return fmt.Sprintf("%s() alpha %q is not a number or percentage", fn, a)
	}
	n, _ := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
	if strings.HasSuffix(a, "%") {
		n /= 100
	}
	if n > 1 {
		return fmt.Sprintf("%s() alpha %s out of range [0, 1]", fn, a)
	}
	return ""
}
