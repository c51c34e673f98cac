package report

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/scanreport/scanreport/pkg/chart"
	"github.com/scanreport/scanreport/pkg/finding"
)

// ImageURL is an inline image reference (a base64 PNG data URL). The
// HTML renderer trusts values of this type in src attributes.
type ImageURL string

// Context is the flat set of named values a template is rendered with.
type Context map[string]any

// Meta describes one report run.
type Meta struct {
	Tool        string
	Title       string
	Company     string
	Footer      string
	AccentColor string
	Version     string
	RunID       string
	GeneratedAt time.Time
}

// Row is one finding as presented in a report table.
type Row struct {
	ID          string
	Category    string
	Location    string
	Identifier  finding.Optional
	Description finding.Optional
	Severity    string
	Extra       map[string]string
}

// Table is a named findings table.
type Table struct {
	Name string
	Kind finding.Kind
	Rows []Row

	// ExtraKeys lists the Extra keys present in any row, sorted.
	ExtraKeys []string
}

// ChartEntry is one chart slot of the report. Skipped charts carry
// chart.Placeholder and the reason they were skipped.
type ChartEntry struct {
	Name    string
	Title   string
	URL     ImageURL
	Skipped bool
	Reason  string
}

// Document is everything a report renders, before flattening.
type Document struct {
	Meta   Meta
	Tables []Table
	Charts []ChartEntry
	Values map[string]any
}

// ContextBuilder collects tables, charts and scalar values. It holds no
// business logic; callers decide what goes in.
type ContextBuilder struct {
	doc Document
}

// NewContextBuilder starts a document. A zero RunID or GeneratedAt is
// filled in.
func NewContextBuilder(meta Meta) *ContextBuilder {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}
	return &ContextBuilder{doc: Document{Meta: meta, Values: map[string]any{}}}
}

// AddTable adds set under name, e.g. "data" or "issues_data".
func (b *ContextBuilder) AddTable(name string, set finding.FindingSet) *ContextBuilder {
	b.doc.Tables = append(b.doc.Tables, NewTable(name, set))
	return b
}

// AddChart adds a chart slot. An empty URL is replaced by the placeholder.
func (b *ContextBuilder) AddChart(entry ChartEntry) *ContextBuilder {
	if entry.URL == "" {
		entry.URL = chart.Placeholder
	}
	b.doc.Charts = append(b.doc.Charts, entry)
	return b
}

// Set adds a scalar or structured value under name.
func (b *ContextBuilder) Set(name string, v any) *ContextBuilder {
	b.doc.Values[name] = v
	return b
}

// Document returns a copy of the collected document.
func (b *ContextBuilder) Document() Document {
	doc := b.doc
	doc.Tables = slices.Clone(b.doc.Tables)
	doc.Charts = slices.Clone(b.doc.Charts)
	doc.Values = maps.Clone(b.doc.Values)
	return doc
}

// NewTable converts a FindingSet into presentation rows.
func NewTable(name string, set finding.FindingSet) Table {
	t := Table{Name: name, Kind: set.Kind(), Rows: make([]Row, 0, set.Len())}
	keys := map[string]struct{}{}
	for _, f := range set.All() {
		row := Row{
			ID:          f.Fingerprint(set.Kind()),
			Category:    f.Category,
			Location:    f.Location,
			Identifier:  f.Identifier,
			Description: f.Description,
			Severity:    f.Severity().String(),
			Extra:       make(map[string]string, len(f.Extra)),
		}
		for k := range f.Extra {
			if v, ok := f.ExtraString(k); ok {
				row.Extra[k] = v
				keys[k] = struct{}{}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.ExtraKeys = slices.Sorted(maps.Keys(keys))
	return t
}

// Table returns the named table.
func (d Document) Table(name string) (Table, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Context flattens the document into template variables:
//
//	<table>          []Row
//	<table>_count    int
//	<table>_columns  []string (extra keys)
//	<chart>          ImageURL
//	charts           []ChartEntry
//	tool, title, company, footer, accent_color, version, run_id,
//	generated_at     Meta fields
//	total_findings   int
//
// plus every value passed to Set. Set values win over generated keys.
func (d Document) Context() Context {
	ctx := Context{
		"tool":         d.Meta.Tool,
		"title":        d.Meta.Title,
		"company":      d.Meta.Company,
		"footer":       d.Meta.Footer,
		"accent_color": d.Meta.AccentColor,
		"version":      d.Meta.Version,
		"run_id":       d.Meta.RunID,
		"generated_at": d.Meta.GeneratedAt.Format(time.RFC3339),
		"charts":       slices.Clone(d.Charts),
	}
	total := 0
	for _, t := range d.Tables {
		ctx[t.Name] = t.Rows
		ctx[t.Name+"_count"] = len(t.Rows)
		ctx[t.Name+"_columns"] = t.ExtraKeys
		total += len(t.Rows)
	}
	ctx["total_findings"] = total
	for _, c := range d.Charts {
		ctx[c.Name] = c.URL
	}
	maps.Copy(ctx, d.Values)
	return ctx
}
