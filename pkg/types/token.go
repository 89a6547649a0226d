package types

import (
	"slices"
	"time"
)

// Token is a single named design value. Key is unique across the live set.
type Token struct {
	Key              string    `json:"key"`
	Value            string    `json:"value"`
	Category         Category  `json:"category"`
	Description      string    `json:"description,omitempty"`
	Aliases          []string  `json:"aliases,omitempty"`
	Deprecated       bool      `json:"deprecated,omitempty"`
	DeprecatedReason string    `json:"deprecated_reason,omitempty"`
	Revision         int       `json:"revision"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// State returns the (value, category) pair that diffs compare.
func (t Token) State() TokenState {
	return TokenState{Value: t.Value, Category: t.Category}
}

// TokenPatch carries the fields of an update. Nil pointers leave the field
// unchanged. A nil Aliases slice leaves aliases unchanged; a non-nil empty
// slice clears them.
type TokenPatch struct {
	Value            *string
	Category         *Category
	Description      *string
	Aliases          []string
	Deprecated       *bool
	DeprecatedReason *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TokenPatch) IsEmpty() bool {
	return p.Value == nil && p.Category == nil && p.Description == nil &&
		p.Aliases == nil && p.Deprecated == nil && p.DeprecatedReason == nil
}

// Apply returns a copy of t with the supplied fields replaced. Fields the
// patch leaves nil keep their prior values, so the result is always the
// complete (value, category) pair that must be validated.
func (p TokenPatch) Apply(t Token) Token {
	out := t
	out.Aliases = slices.Clone(t.Aliases)
	if p.Value != nil {
		out.Value = *p.Value
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Aliases != nil {
		out.Aliases = slices.Clone(p.Aliases)
	}
	if p.Deprecated != nil {
		out.Deprecated = *p.Deprecated
		if !out.Deprecated {
			out.DeprecatedReason = ""
		}
	}
	if p.DeprecatedReason != nil {
		out.DeprecatedReason = *p.DeprecatedReason
	}
	return out
}

// TokenFilter narrows TokenStore.List. The zero value lists every token.
type TokenFilter struct {
	Category          *Category
	ExcludeDeprecated bool
}

// ImportPolicy decides how an import treats keys that already exist.
type ImportPolicy string

// Import policies.
const (
	// ImportReject rejects the whole batch when any key already exists.
	ImportReject ImportPolicy = "reject"
	// ImportSkip leaves existing tokens alone and counts them as skipped.
	ImportSkip ImportPolicy = "skip"
)

// ImportItem is a candidate token handed to TokenStore.Import by a parser.
// Category is kept as the raw name so unknown categories are reported
// alongside every other failure in the batch.
type ImportItem struct {
	Key              string
	Value            string
	Category         string
	Description      string
	Aliases          []string
	Deprecated       bool
	DeprecatedReason string
}

// ImportResult counts what an accepted import did.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ValidationFailure names a live token that no longer passes validation.
type ValidationFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ValidationReport is the outcome of re-validating the live set.
type ValidationReport struct {
	Total      int                 `json:"total"`
	Valid      int                 `json:"valid"`
	Invalid    []ValidationFailure `json:"invalid"`
	Deprecated []string            `json:"deprecated"`
}
