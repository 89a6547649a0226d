package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/swatch/pkg/types"
	"github.com/mesh-intelligence/swatch/pkg/validate"
)

// Import validates every item before writing any of them. Under
// ImportReject a key that already exists is a failure; under ImportSkip it
// is counted and left alone. Any failure rolls the batch back and is
// reported in a single *types.ImportError.
func (tt *tokensTable) Import(items []types.ImportItem, policy types.ImportPolicy) (types.ImportResult, error) {
	if policy == "" {
		policy = types.ImportReject
	}
	if policy != types.ImportReject && policy != types.ImportSkip {
		return types.ImportResult{}, fmt.Errorf("unknown import policy %q", policy)
	}

	release, err := tt.backend.acquire()
	if err != nil {
		return types.ImportResult{}, err
	}
	defer release()

	var result types.ImportResult
	now := tt.backend.clock()
	err = tt.backend.withTx("import", func(tx *sql.Tx) error {
		var (
			failures []types.ImportFailure
			accepted []types.Token
			seen     = make(map[string]bool, len(items))
			claimed  = make(map[string]string)
		)
		fail := func(i int, key string, err error) {
			failures = append(failures, types.ImportFailure{Index: i, Key: key, Err: err})
		}

		for i, item := range items {
			token, err := tokenFromItem(item)
			if err != nil {
				fail(i, item.Key, err)
				continue
			}
			if seen[token.Key] {
				fail(i, token.Key, fmt.Errorf("repeated in batch: %w", &types.DuplicateKeyError{Key: token.Key}))
				continue
			}
			seen[token.Key] = true

			exists, err := tokenExists(tx, token.Key)
			if err != nil {
				return err
			}
			if exists {
				if policy == types.ImportSkip {
					result.Skipped++
					continue
				}
				fail(i, token.Key, &types.DuplicateKeyError{Key: token.Key})
				continue
			}
			if err := checkNames(tx, token); err != nil {
				var keyErr *types.KeyError
				if !errors.As(err, &keyErr) {
					return err
				}
				fail(i, token.Key, err)
				continue
			}
			if err := claimNames(claimed, token); err != nil {
				fail(i, token.Key, err)
				continue
			}
			token.Revision = 1
			token.CreatedAt = now
			token.UpdatedAt = now
			accepted = append(accepted, token)
		}

		if len(failures) > 0 {
			return &types.ImportError{Failures: failures}
		}
		for _, token := range accepted {
			if err := insertToken(tx, token); err != nil {
				return err
			}
		}
		result.Added = len(accepted)
		return nil
	})
	if err != nil {
		tt.backend.logger.Debug("import rejected", "items", len(items), "error", err)
		return types.ImportResult{}, err
	}
	tt.backend.logger.Debug("import committed", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

// tokenFromItem parses the item's category and validates the resulting
// token.
func tokenFromItem(item types.ImportItem) (types.Token, error) {
	if err := validate.Key(item.Key); err != nil {
		return types.Token{}, err
	}
	category, err := types.ParseCategory(item.Category)
	if err != nil {
		return types.Token{}, err
	}
	token := types.Token{
		Key:         item.Key,
		Value:       item.Value,
		Category:    category,
		Description: item.Description,
		Aliases:     cleanAliases(item.Aliases),
		Deprecated:  item.Deprecated,
	}
	if token.Deprecated {
		token.DeprecatedReason = item.DeprecatedReason
	}
	if err := validate.Token(token); err != nil {
		return types.Token{}, err
	}
	return token, nil
}

// claimNames records the key and aliases of an accepted batch item, failing
// if another item of the batch already uses one of them.
func claimNames(claimed map[string]string, t types.Token) error {
	names := append([]string{t.Key}, t.Aliases...)
	for _, name := range names {
		if owner, ok := claimed[name]; ok && owner != t.Key {
			return &types.KeyError{Key: name, Reason: fmt.Sprintf("already used by %s in this batch", owner)}
		}
	}
	for _, name := range names {
		claimed[name] = t.Key
	}
	return nil
}
