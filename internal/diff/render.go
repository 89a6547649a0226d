package diff

import (
	"fmt"
	"io"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// WriteText writes one line per changed key followed by a summary line.
// When all is true unchanged keys are listed too.
func WriteText(w io.Writer, r *types.DiffReport, all bool) error {
	var sb strings.Builder
	for _, e := range r.Entries {
		switch e.Kind {
		case types.Added:
			fmt.Fprintf(&sb, "+ %s: %s\n", e.Key, formatState(e.New))
		case types.Removed:
			fmt.Fprintf(&sb, "- %s: %s\n", e.Key, formatState(e.Old))
		case types.Modified:
			fmt.Fprintf(&sb, "~ %s: %s -> %s\n", e.Key, formatState(e.Old), formatState(e.New))
		case types.Unchanged:
			if all {
				fmt.Fprintf(&sb, "  %s: %s\n", e.Key, formatState(e.New))
			}
		}
	}
	s := r.Summary
	fmt.Fprintf(&sb, "%s..%s: %d added, %d removed, %d modified, %d unchanged\n",
		r.A, r.B, s.Added, s.Removed, s.Modified, s.Unchanged)
	_, err := io.WriteString(w, sb.String())
	return err
}

// DefaultContext is the number of unified diff context lines used when a
// negative count is given.
const DefaultContext = 3

// Unified renders the report as a unified diff over "key = value [category]"
// lines with context unchanged lines around each change. Identical sources
// produce an empty string.
func Unified(r *types.DiffReport, context int) (string, error) {
	if context < 0 {
		context = DefaultContext
	}
	var a, b []string
	for _, e := range r.Entries {
		if e.Old != nil {
			a = append(a, line(e.Key, e.Old))
		}
		if e.New != nil {
			b = append(b, line(e.Key, e.New))
		}
	}
	u := difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: r.A,
		ToFile:   r.B,
		Context:  context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("rendering unified diff: %w", err)
	}
	return s, nil
}

func line(key string, s *types.TokenState) string {
	return fmt.Sprintf("%s = %s [%s]\n", key, s.Value, s.Category)
}

func formatState(s *types.TokenState) string {
	return fmt.Sprintf("%s [%s]", s.Value, s.Category)
}
