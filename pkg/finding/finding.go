package finding

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spaolacci/murmur3"
	"github.com/spf13/cast"
)

// Kind tags which scanner output shape a FindingSet was normalized from.
type Kind string

const (
	// KindIssues is static-analysis issues (bandit results, sonarqube issues).
	KindIssues Kind = "issues"

	// KindHotspots is static-analysis security hotspots (sonarqube).
	KindHotspots Kind = "hotspots"

	// KindDependencies is dependency vulnerability tuples (safety).
	KindDependencies Kind = "dependencies"

	// KindSecrets is secret-scan results (trufflehog).
	KindSecrets Kind = "secrets"
)

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindIssues, KindHotspots, KindDependencies, KindSecrets}
}

// Optional is an explicitly absent-or-present string column value.
// The zero value is absent. A present empty string is distinct from
// absent.
type Optional struct {
	value   string
	present bool
}

// Some returns a present Optional holding v.
func Some(v string) Optional {
	return Optional{value: v, present: true}
}

// None returns the absent marker.
func None() Optional {
	return Optional{}
}

// Get returns the value and whether it is present.
func (o Optional) Get() (string, bool) {
	return o.value, o.present
}

// Present reports whether a value is set.
func (o Optional) Present() bool {
	return o.present
}

// Value returns the value, or "" when absent.
func (o Optional) Value() string {
	return o.value
}

// Or returns the value when present and def otherwise.
func (o Optional) Or(def string) string {
	if o.present {
		return o.value
	}
	return def
}

// String implements fmt.Stringer. Absent renders as "<absent>".
func (o Optional) String() string {
	if !o.present {
		return "<absent>"
	}
	return o.value
}

// Finding is one normalized row. Category and Location are mandatory
// and never empty in a set produced by a normalizer.
type Finding struct {
	Category    string
	Location    string
	Identifier  Optional
	Description Optional

	// Extra holds scanner-specific scalar fields (string, float64, bool)
	// that are not promoted to columns.
	Extra map[string]any
}

// Validate checks the mandatory columns.
func (f Finding) Validate() error {
	if strings.TrimSpace(f.Category) == "" {
		return fmt.Errorf("%w: empty category", ErrSchemaMismatch)
	}
	if strings.TrimSpace(f.Location) == "" {
		return fmt.Errorf("%w: empty location", ErrSchemaMismatch)
	}
	return nil
}

// ExtraString returns the named extra field rendered as a string.
func (f Finding) ExtraString(name string) (string, bool) {
	v, ok := f.Extra[name]
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v), true
	}
	return s, true
}

// Severity maps the category onto the canonical scale.
func (f Finding) Severity() Severity {
	return ParseSeverity(f.Category)
}

// Fingerprint returns a stable 64-bit murmur3 hash of the row's
// columns as 16 hex characters. Extra fields are not included.
func (f Finding) Fingerprint(kind Kind) string {
	h := murmur3.New64()
	for _, part := range []string{
		string(kind), f.Category, f.Location,
		f.Identifier.String(), f.Description.String(),
	} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0x1f})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func (f Finding) clone() Finding {
	f.Extra = maps.Clone(f.Extra)
	return f
}

// Column selects one grouping column of a Finding.
type Column struct {
	name  string
	extra bool
}

var (
	// ColumnCategory groups by Finding.Category.
	ColumnCategory = Column{name: "category"}

	// ColumnLocation groups by Finding.Location.
	ColumnLocation = Column{name: "location"}

	// ColumnIdentifier groups by Finding.Identifier, skipping absent values.
	ColumnIdentifier = Column{name: "identifier"}

	// ColumnDescription groups by Finding.Description, skipping absent values.
	ColumnDescription = Column{name: "description"}
)

// ExtraColumn selects a named field from Finding.Extra.
func ExtraColumn(name string) Column {
	return Column{name: name, extra: true}
}

// Name returns the column name. Extra columns are prefixed with "extra.".
func (c Column) Name() string {
	if c.extra {
		return "extra." + c.name
	}
	return c.name
}

// Mandatory reports whether every valid Finding carries this column.
func (c Column) Mandatory() bool {
	return !c.extra && (c.name == "category" || c.name == "location")
}

// Lookup returns the column value for f and whether it is present.
func (c Column) Lookup(f Finding) (string, bool) {
	if c.extra {
		return f.ExtraString(c.name)
	}
	switch c.name {
	case "category":
		return f.Category, true
	case "location":
		return f.Location, true
	case "identifier":
		return f.Identifier.Get()
	case "description":
		return f.Description.Get()
	}
	return "", false
}

// FindingSet is an ordered, immutable sequence of Findings from one
// scanner input. Accessors return copies.
type FindingSet struct {
	kind   Kind
	source string
	rows   []Finding
}

// NewSet builds a FindingSet. The rows are copied.
func NewSet(kind Kind, source string, rows []Finding) FindingSet {
	cp := make([]Finding, len(rows))
	for i, r := range rows {
		cp[i] = r.clone()
	}
	return FindingSet{kind: kind, source: source, rows: cp}
}

// Kind returns the scanner kind the set was normalized from.
func (s FindingSet) Kind() Kind { return s.kind }

// Source returns the input path the set was loaded from.
func (s FindingSet) Source() string { return s.source }

// Len returns the number of rows.
func (s FindingSet) Len() int { return len(s.rows) }

// IsEmpty reports whether the set has no rows.
func (s FindingSet) IsEmpty() bool { return len(s.rows) == 0 }

// At returns a copy of row i. It panics if i is out of range.
func (s FindingSet) At(i int) Finding {
	return s.rows[i].clone()
}

// All returns a copy of every row in order.
func (s FindingSet) All() []Finding {
	out := make([]Finding, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.clone()
	}
	return out
}

// Filter returns a new set holding the rows for which keep returns true.
// A nil keep returns the set unchanged.
func (s FindingSet) Filter(keep func(Finding) bool) FindingSet {
	if keep == nil {
		return s
	}
	var out []Finding
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return FindingSet{kind: s.kind, source: s.source, rows: out}
}

// Locations returns the distinct locations in first-seen order.
func (s FindingSet) Locations() []string {
	seen := make(map[string]struct{}, len(s.rows))
	var out []string
	for _, r := range s.rows {
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}
