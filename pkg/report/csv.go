package report

import (
	"encoding/csv"
	"io"
	"strings"
)

const utf8BOM = "\xEF\xBB\xBF"

// CSVOptions configures the findings CSV export.
type CSVOptions struct {
	// ExcelCompatible adds a UTF-8 BOM so Excel detects the encoding.
	ExcelCompatible bool

	// SanitizeFormulas prefixes cells starting with = + - @ TAB CR
	// with a single quote so spreadsheets do not evaluate them.
	SanitizeFormulas bool
}

// baseColumns are always written first; one column per extra key follows.
var baseColumns = []string{"table", "id", "category", "location", "identifier", "description", "severity"}

// WriteCSV exports tables as one CSV document. Absent optional values
// are written as empty cells.
func WriteCSV(w io.Writer, tables []Table, opts CSVOptions) error {
	if opts.ExcelCompatible {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}

	var extra []string
	seen := map[string]bool{}
	for _, t := range tables {
		for _, k := range t.ExtraKeys {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}

	cw := csv.NewWriter(w)
	header := append(append([]string{}, baseColumns...), extra...)
	if err := cw.Write(header); err != nil {
		return err
	}

	clean := func(s string) string { return s }
	if opts.SanitizeFormulas {
		clean = sanitizeForCSV
	}
	for _, t := range tables {
		for _, r := range t.Rows {
			rec := []string{
				t.Name,
				r.ID,
				clean(r.Category),
				clean(r.Location),
				clean(r.Identifier.Value()),
				clean(r.Description.Value()),
				r.Severity,
			}
			for _, k := range extra {
				rec = append(rec, clean(r.Extra[k]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// sanitizeForCSV prevents CSV injection by prefixing dangerous characters.
func sanitizeForCSV(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
