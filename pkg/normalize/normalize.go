// Package normalize maps scanner-specific JSON trees onto the uniform
// finding.Finding row shape.
//
// Each supported tool has one Normalizer with a fixed field table.
// Only the export shape each tool is deployed with is accepted; any
// other shape is a *SchemaError.
package normalize

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/scanreport/scanreport/pkg/finding"
)

// Normalizer converts one tool's raw JSON tree into a FindingSet.
type Normalizer interface {
	// Name is the registry key, e.g. "bandit" or "sonarqube-hotspots".
	Name() string

	// Kind is the scanner output kind the rows belong to.
	Kind() finding.Kind

	// Normalize maps raw (as returned by loader.Load) into rows. source
	// is recorded on the set for reporting.
	Normalize(raw any, source string) (finding.FindingSet, error)
}

// ErrUnknownNormalizer is returned by Get for unregistered names.
var ErrUnknownNormalizer = errors.New("normalize: unknown normalizer")

var registry = map[string]Normalizer{}

func register(n Normalizer) {
	registry[n.Name()] = n
}

func init() {
	register(Bandit{})
	register(SonarIssues{})
	register(SonarHotspots{})
	register(Safety{})
	register(Trufflehog{})
}

// Get returns the normalizer registered under name.
func Get(name string) (Normalizer, error) {
	n, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownNormalizer, name, strings.Join(Names(), ", "))
	}
	return n, nil
}

// Names returns the registered normalizer names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SchemaError reports a record that does not fit the tool's mapping.
// Index is the zero-based record position, or -1 for the document
// shape itself. It matches finding.ErrSchemaMismatch via errors.Is.
type SchemaError struct {
	Normalizer string
	Index      int
	Field      string
	Reason     string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Normalizer)
	b.WriteString(": schema mismatch")
	if e.Index >= 0 {
		fmt.Fprintf(&b, " at record %d", e.Index)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ", field %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *SchemaError) Is(target error) bool {
	return target == finding.ErrSchemaMismatch
}

// column is the destination of a fieldRule.
type column int

const (
	colCategory column = iota
	colLocation
	colIdentifier
	colDescription
	colExtra
)

// fieldRule maps one source path of an object record to a column.
type fieldRule struct {
	path     []string
	to       column
	extra    string // key in Finding.Extra when to == colExtra
	required bool
	format   func(string) string
	convert  func(any) (any, bool) // overrides scalar extraction
}

func (r fieldRule) name() string {
	return strings.Join(r.path, ".")
}

// records extracts the array of object records stored under the first
// of keys present in raw.
func records(name string, raw any, keys ...string) ([]any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &SchemaError{Normalizer: name, Index: -1, Reason: fmt.Sprintf("expected a JSON object, got %s", typeName(raw))}
	}
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			return nil, &SchemaError{Normalizer: name, Index: -1, Field: k, Reason: fmt.Sprintf("expected an array, got %s", typeName(v))}
		}
		return arr, nil
	}
	return nil, &SchemaError{Normalizer: name, Index: -1, Field: keys[0], Reason: "missing top-level array"}
}

// mapObjects applies rules to every element of recs.
func mapObjects(n Normalizer, source string, recs []any, rules []fieldRule) (finding.FindingSet, error) {
	rows := make([]finding.Finding, 0, len(recs))
	for i, rec := range recs {
		obj, ok := rec.(map[string]any)
		if !ok {
			return finding.FindingSet{}, &SchemaError{Normalizer: n.Name(), Index: i, Reason: fmt.Sprintf("expected an object record, got %s", typeName(rec))}
		}
		f, err := mapRecord(n.Name(), i, obj, rules)
		if err != nil {
			return finding.FindingSet{}, err
		}
		rows = append(rows, f)
	}
	return finding.NewSet(n.Kind(), source, rows), nil
}

func mapRecord(name string, idx int, obj map[string]any, rules []fieldRule) (finding.Finding, error) {
	var f finding.Finding
	for _, r := range rules {
		raw, found := lookup(obj, r.path)
		var (
			v  any
			ok bool
		)
		if found {
			if r.convert != nil {
				v, ok = r.convert(raw)
			} else {
				v, ok = scalar(raw)
			}
		}
		if !ok {
			if r.required {
				reason := "missing required field"
				if found {
					reason = fmt.Sprintf("unusable value of type %s", typeName(raw))
				}
				return finding.Finding{}, &SchemaError{Normalizer: name, Index: idx, Field: r.name(), Reason: reason}
			}
			continue
		}

		if r.to == colExtra {
			if f.Extra == nil {
				f.Extra = make(map[string]any)
			}
			f.Extra[r.extra] = v
			continue
		}

		s := cast.ToString(v)
		if r.format != nil {
			s = r.format(s)
		}
		switch r.to {
		case colCategory:
			f.Category = strings.TrimSpace(s)
		case colLocation:
			f.Location = strings.TrimSpace(s)
		case colIdentifier:
			f.Identifier = finding.Some(s)
		case colDescription:
			f.Description = finding.Some(s)
		}
	}
	if f.Category == "" {
		return finding.Finding{}, &SchemaError{Normalizer: name, Index: idx, Field: ruleName(rules, colCategory), Reason: "empty category"}
	}
	if f.Location == "" {
		return finding.Finding{}, &SchemaError{Normalizer: name, Index: idx, Field: ruleName(rules, colLocation), Reason: "empty location"}
	}
	return f, nil
}

func ruleName(rules []fieldRule, to column) string {
	for _, r := range rules {
		if r.to == to {
			return r.name()
		}
	}
	return ""
}

// lookup walks a dotted path through nested objects. A JSON null
// counts as not found.
func lookup(obj map[string]any, path []string) (any, bool) {
	var cur any = obj
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// scalar accepts strings, numbers and booleans.
func scalar(v any) (any, bool) {
	switch t := v.(type) {
	case string, bool:
		return t, true
	case float64:
		return t, true
	case int, int64:
		return cast.ToFloat64(t), true
	}
	return nil, false
}

// joinStrings accepts an array of scalars and joins them with ", ".
func joinStrings(v any) (any, bool) {
	arr, ok := v.([]any)
	if !ok {
		return scalar(v)
	}
	parts := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := scalar(e); ok {
			parts = append(parts, cast.ToString(s))
		}
	}
	if len(parts) == 0 {
		return nil, false
	}
	return strings.Join(parts, ", "), true
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
