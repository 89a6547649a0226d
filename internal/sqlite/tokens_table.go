package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/swatch/pkg/types"
	"github.com/mesh-intelligence/swatch/pkg/validate"
)

// Compile-time interface check: tokensTable must implement TokenStore.
var _ types.TokenStore = (*tokensTable)(nil)

const tokenColumns = "key, value, category, description, aliases, deprecated, deprecated_reason, revision, created_at, updated_at"

// tokensTable implements types.TokenStore over the tokens table. Each
// operation hydrates and dehydrates between rows and *types.Token.
type tokensTable struct {
	backend *Backend
}

// Get retrieves a token by key.
func (tt *tokensTable) Get(key string) (*types.Token, error) {
	release, err := tt.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	return getToken(tt.backend.db, key)
}

// Add validates and inserts a new token with revision 1.
func (tt *tokensTable) Add(token types.Token) (*types.Token, error) {
	release, err := tt.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	token.Aliases = cleanAliases(token.Aliases)
	if err := validate.Token(token); err != nil {
		return nil, err
	}
	now := tt.backend.clock()
	token.Revision = 1
	token.CreatedAt = now
	token.UpdatedAt = now
	if !token.Deprecated {
		token.DeprecatedReason = ""
	}

	err = tt.backend.withTx("add token", func(tx *sql.Tx) error {
		exists, err := tokenExists(tx, token.Key)
		if err != nil {
			return err
		}
		if exists {
			return &types.DuplicateKeyError{Key: token.Key}
		}
		if err := checkNames(tx, token); err != nil {
			return err
		}
		return insertToken(tx, token)
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Update applies patch to the stored token and re-validates the resulting
// (value, category) pair. An empty patch returns the token unchanged.
func (tt *tokensTable) Update(key string, patch types.TokenPatch) (*types.Token, error) {
	release, err := tt.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *types.Token
	err = tt.backend.withTx("update token", func(tx *sql.Tx) error {
		current, err := getToken(tx, key)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}

		next := patch.Apply(*current)
		next.Aliases = cleanAliases(next.Aliases)
		if err := validate.Token(next); err != nil {
			return err
		}
		if err := checkNames(tx, next); err != nil {
			return err
		}
		next.Revision = current.Revision + 1
		next.UpdatedAt = tt.backend.clock()

		aliases, err := json.Marshal(next.Aliases)
		if err != nil {
			return fmt.Errorf("encoding aliases: %w", err)
		}
		_, err = tx.Exec(
			`UPDATE tokens SET value = ?, category = ?, description = ?, aliases = ?,
			deprecated = ?, deprecated_reason = ?, revision = ?, updated_at = ? WHERE key = ?`,
			next.Value, next.Category.String(), next.Description, string(aliases),
			next.Deprecated, next.DeprecatedReason, next.Revision, formatTime(next.UpdatedAt), key,
		)
		if err != nil {
			return storageErr("update token", err)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a token from the live set. Snapshot entries are separate
// rows and are not touched.
func (tt *tokensTable) Delete(key string) error {
	release, err := tt.backend.acquire()
	if err != nil {
		return err
	}
	defer release()

	return tt.backend.withTx("delete token", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM tokens WHERE key = ?", key)
		if err != nil {
			return storageErr("delete token", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageErr("delete token", err)
		}
		if n == 0 {
			return &types.NotFoundError{Kind: types.KindToken, Ref: key}
		}
		return nil
	})
}

// List returns the tokens matching filter ordered by key.
func (tt *tokensTable) List(filter types.TokenFilter) ([]*types.Token, error) {
	release, err := tt.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	return listTokens(tt.backend.db, filter)
}

// Seed inserts each default that passes validation and whose key is not
// yet present, in one transaction. It returns the number inserted.
func (tt *tokensTable) Seed(defaults []types.Token) (int, error) {
	release, err := tt.backend.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	now := tt.backend.clock()
	inserted := 0
	err = tt.backend.withTx("seed", func(tx *sql.Tx) error {
		for _, token := range defaults {
			token.Aliases = cleanAliases(token.Aliases)
			if err := validate.Token(token); err != nil {
				return fmt.Errorf("seeding %s: %w", token.Key, err)
			}
			exists, err := tokenExists(tx, token.Key)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := checkNames(tx, token); err != nil {
				return fmt.Errorf("seeding %s: %w", token.Key, err)
			}
			token.Revision = 1
			token.CreatedAt = now
			token.UpdatedAt = now
			if err := insertToken(tx, token); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	tt.backend.logger.Debug("seeded tokens", "inserted", inserted, "skipped", len(defaults)-inserted)
	return inserted, nil
}

// ValidateAll re-runs validation over every live token.
func (tt *tokensTable) ValidateAll() (*types.ValidationReport, error) {
	release, err := tt.backend.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	tokens, err := listTokens(tt.backend.db, types.TokenFilter{})
	if err != nil {
		return nil, err
	}
	report := &types.ValidationReport{
		Total:      len(tokens),
		Invalid:    []types.ValidationFailure{},
		Deprecated: []string{},
	}
	for _, t := range tokens {
		if t.Deprecated {
			report.Deprecated = append(report.Deprecated, t.Key)
		}
		if err := validate.Token(*t); err != nil {
			report.Invalid = append(report.Invalid, types.ValidationFailure{Key: t.Key, Reason: failureReason(err)})
			continue
		}
		report.Valid++
	}
	return report, nil
}

func failureReason(err error) string {
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var ke *types.KeyError
	if errors.As(err, &ke) {
		return ke.Reason
	}
	return err.Error()
}

// cleanAliases drops empty and repeated aliases, keeping first-seen order.
// The result is never nil.
func cleanAliases(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	seen := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func tokenExists(q querier, key string) (bool, error) {
	var one int
	err := q.QueryRow("SELECT 1 FROM tokens WHERE key = ?", key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("check token existence", err)
	}
	return true, nil
}

// checkNames rejects t when its key or one of its aliases is already the
// key or an alias of another live token. Keys and aliases share one
// namespace.
func checkNames(q querier, t types.Token) error {
	owner, err := aliasOwner(q, t.Key, t.Key)
	if err != nil {
		return err
	}
	if owner != "" {
		return &types.KeyError{Key: t.Key, Reason: fmt.Sprintf("already an alias of %s", owner)}
	}
	for _, alias := range t.Aliases {
		exists, err := tokenExists(q, alias)
		if err != nil {
			return err
		}
		if exists {
			return &types.KeyError{Key: alias, Reason: "alias is the key of another token"}
		}
		owner, err := aliasOwner(q, alias, t.Key)
		if err != nil {
			return err
		}
		if owner != "" {
			return &types.KeyError{Key: alias, Reason: fmt.Sprintf("alias already used by %s", owner)}
		}
	}
	return nil
}

// aliasOwner returns the key of a token other than self that lists name
// as an alias, or "" if there is none.
func aliasOwner(q querier, name, self string) (string, error) {
	var owner string
	err := q.QueryRow(
		`SELECT t.key FROM tokens t, json_each(t.aliases) a
		WHERE a.value = ? AND t.key <> ? ORDER BY t.key LIMIT 1`, name, self,
	).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("check aliases", err)
	}
	return owner, nil
}

func insertToken(tx *sql.Tx, t types.Token) error {
	aliases, err := json.Marshal(t.Aliases)
	if err != nil {
		return fmt.Errorf("encoding aliases: %w", err)
	}
	_, err = tx.Exec(
		"INSERT INTO tokens ("+tokenColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.Key, t.Value, t.Category.String(), t.Description, string(aliases),
		t.Deprecated, t.DeprecatedReason, t.Revision, formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return storageErr("insert token", err)
	}
	return nil
}

func getToken(q querier, key string) (*types.Token, error) {
	row := q.QueryRow("SELECT "+tokenColumns+" FROM tokens WHERE key = ?", key)
	t, err := hydrateToken(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &types.NotFoundError{Kind: types.KindToken, Ref: key}
	}
	if err != nil {
		return nil, storageErr("get token", err)
	}
	return t, nil
}

func listTokens(q querier, filter types.TokenFilter) ([]*types.Token, error) {
	query := "SELECT " + tokenColumns + " FROM tokens"
	var conds []string
	var args []any
	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category.String())
	}
	if filter.ExcludeDeprecated {
		conds = append(conds, "deprecated = 0")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY key ASC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, storageErr("list tokens", err)
	}
	defer rows.Close()

	tokens := []*types.Token{}
	for rows.Next() {
		t, err := hydrateToken(rows)
		if err != nil {
			return nil, storageErr("list tokens", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tokens", err)
	}
	return tokens, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateToken converts a tokens row into a *types.Token.
func hydrateToken(s scanner) (*types.Token, error) {
	var (
		t                    types.Token
		category, aliases    string
		createdAt, updatedAt string
	)
	if err := s.Scan(&t.Key, &t.Value, &category, &t.Description, &aliases,
		&t.Deprecated, &t.DeprecatedReason, &t.Revision, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if t.Category, err = types.ParseCategory(category); err != nil {
		return nil, fmt.Errorf("token %s: %w", t.Key, err)
	}
	if err := json.Unmarshal([]byte(aliases), &t.Aliases); err != nil {
		return nil, fmt.Errorf("token %s: decoding aliases: %w", t.Key, err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
