// Package importer parses external token files into candidate tokens for
// TokenStore.Import. Parsers only shape data: values, keys and categories
// are passed through unchanged so the store can report every invalid item
// in one batch.
package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/swatch/pkg/types"
)

// Format names an import file format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatJSONL Format = "jsonl"
)

// ErrUnknownFormat is returned when a format cannot be determined.
var ErrUnknownFormat = errors.New("unknown import format")

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("%w %q (want json, yaml or jsonl)", ErrUnknownFormat, name)
}

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension, set the format explicitly", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ParseFile reads path in format; an empty format is detected from the
// extension.
func ParseFile(path string, format Format) ([]types.ImportItem, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}

// Parse reads candidate tokens from r.
func Parse(r io.Reader, format Format) ([]types.ImportItem, error) {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
		return fromDocument(doc)
	case FormatYAML:
		var doc any
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
		return fromDocument(doc)
	case FormatJSONL:
		return readJSONL(r)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// fromDocument accepts a W3C token tree, a flat object keyed by token key,
// or a list of token objects, each optionally wrapped in {"tokens": ...}.
func fromDocument(doc any) ([]types.ImportItem, error) {
	if m, ok := doc.(map[string]any); ok {
		switch inner := m["tokens"].(type) {
		case map[string]any, []any:
			doc = inner
		}
	}
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		var items []types.ImportItem
		if err := walk(v, nil, "", &items); err != nil {
			return nil, err
		}
		return items, nil
	case []any:
		items := make([]types.ImportItem, 0, len(v))
		for i, e := range v {
			obj, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("item %d: want an object, got %T", i+1, e)
			}
			item, err := itemFrom(obj, "", "")
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i+1, err)
			}
			items = append(items, item)
		}
		return items, nil
	}
	return nil, fmt.Errorf("want an object or a list at top level, got %T", doc)
}

// walk visits a group in key order. Members whose name starts with '$'
// are group metadata; "$type" is inherited by every token below.
func walk(group map[string]any, path []string, inheritedType string, items *[]types.ImportItem) error {
	if t, ok := group["$type"].(string); ok {
		inheritedType = t
	}
	names := make([]string, 0, len(group))
	for name := range group {
		if !strings.HasPrefix(name, "$") {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		child, ok := group[name].(map[string]any)
		childPath := append(slices.Clone(path), name)
		key := strings.Join(childPath, "/")
		if !ok {
			return fmt.Errorf("%s: want a token or group object, got %T", key, group[name])
		}
		if isToken(child) {
			item, err := itemFrom(child, key, inheritedType)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*items = append(*items, item)
			continue
		}
		if err := walk(child, childPath, inheritedType, items); err != nil {
			return err
		}
	}
	return nil
}

func isToken(obj map[string]any) bool {
	if _, ok := obj["$value"]; ok {
		return true
	}
	v, ok := obj["value"]
	if !ok {
		return false
	}
	_, isGroup := v.(map[string]any)
	return !isGroup
}

// itemFrom builds a candidate from a token object. key is the tree path,
// overridden by an explicit "key" member.
func itemFrom(obj map[string]any, key, inheritedType string) (types.ImportItem, error) {
	item := types.ImportItem{Key: key}
	if k, ok := obj["key"].(string); ok {
		item.Key = k
	}
	if item.Key == "" {
		return item, errors.New("token has no key")
	}

	raw, ok := first(obj, "$value", "value")
	if !ok {
		return item, errors.New("token has no value")
	}
	value, err := scalar(raw)
	if err != nil {
		return item, fmt.Errorf("value: %w", err)
	}
	item.Value = value

	if typ, ok := first(obj, "$type", "category", "type"); ok {
		s, err := scalar(typ)
		if err != nil {
			return item, fmt.Errorf("category: %w", err)
		}
		item.Category = categoryName(s)
	}
	if item.Category == "" && inheritedType != "" {
		item.Category = categoryName(inheritedType)
	}
	if item.Category == "" {
		segment, _, _ := strings.Cut(item.Key, "/")
		if _, err := types.ParseCategory(segment); err == nil {
			item.Category = segment
		}
	}

	if d, ok := first(obj, "$description", "description"); ok {
		if item.Description, err = scalar(d); err != nil {
			return item, fmt.Errorf("description: %w", err)
		}
	}
	if a, ok := first(obj, "$aliases", "aliases"); ok {
		if item.Aliases, err = stringList(a); err != nil {
			return item, fmt.Errorf("aliases: %w", err)
		}
	}
	if d, ok := first(obj, "$deprecated", "deprecated"); ok {
		switch v := d.(type) {
		case bool:
			item.Deprecated = v
		case string:
			item.Deprecated = true
			item.DeprecatedReason = v
		default:
			return item, fmt.Errorf("deprecated: want a boolean or a reason, got %T", d)
		}
	}
	if r, ok := obj["deprecated_reason"].(string); ok && item.Deprecated {
		item.DeprecatedReason = r
	}
	return item, nil
}

// w3cTypes maps design-token-format type names to category names.
var w3cTypes = map[string]string{
	"fontsize":     "typography",
	"fontsizes":    "typography",
	"duration":     "motion",
	"borderradius": "radius",
	"zindex":       "z-index",
	"dimension":    "",
}

// categoryName normalises a declared type. Unknown names are returned as
// given so the store reports them.
func categoryName(t string) string {
	if mapped, ok := w3cTypes[strings.ToLower(t)]; ok {
		return mapped
	}
	return t
}

func first(obj map[string]any, names ...string) (any, bool) {
	for _, n := range names {
		if v, ok := obj[n]; ok {
			return v, true
		}
	}
	return nil, false
}

func scalar(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("want a string or number, got %T", v)
}

func stringList(v any) ([]string, error) {
	switch l := v.(type) {
	case string:
		return []string{l}, nil
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("want strings, got %T", e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("want a list of strings, got %T", v)
}

// readJSONL reads one token object per line. Blank lines are skipped; a
// malformed line fails the whole read with its line number.
func readJSONL(r io.Reader) ([]types.ImportItem, error) {
	var items []types.ImportItem
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		item, err := itemFrom(obj, "", "")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning JSONL: %w", err)
	}
	return items, nil
}
