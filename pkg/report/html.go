package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scanreport/scanreport/pkg/finding"
)

// ErrTemplate wraps template parse and execution failures other than a
// missing variable.
var ErrTemplate = errors.New("report: template error")

// MissingVariableError names a template variable the context does not
// supply. It matches finding.ErrMissingTemplateVariable via errors.Is.
type MissingVariableError struct {
	Template string
	Name     string
	Err      error
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("template %s references undefined variable %q", e.Template, e.Name)
}

func (e *MissingVariableError) Unwrap() []error {
	return []error{finding.ErrMissingTemplateVariable, e.Err}
}

var (
	missingKeyPattern   = regexp.MustCompile(`map has no entry for key "([^"]*)"`)
	missingFieldPattern = regexp.MustCompile(`can't evaluate field (\w+)`)
)

// Renderer renders HTML templates with sprig and report helpers.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer returns a Renderer with the standard function map.
func NewRenderer() *Renderer {
	funcs := sprig.HtmlFuncMap()
	for name, fn := range helperFuncs() {
		funcs[name] = fn
	}
	return &Renderer{funcs: funcs}
}

func helperFuncs() template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		// optional renders an absent value as the fallback (default "-").
		"optional": func(o finding.Optional, fallback ...string) string {
			def := "-"
			if len(fallback) > 0 {
				def = fallback[0]
			}
			return o.Or(def)
		},
		"severityClass": func(label string) string {
			return "sev-" + finding.ParseSeverity(label).String()
		},
		"severityColor": func(label string) string {
			return finding.ParseSeverity(label).Color()
		},
		"percent": func(part, whole int) string {
			if whole <= 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
		},
		"titleCase": func(s string) string {
			return title.String(strings.ToLower(s))
		},
		"imageURL": func(u ImageURL) template.URL {
			return template.URL(u)
		},
	}
}

// Parse parses text as an HTML template named name. Referencing a
// missing map key is an error at execution time.
func (r *Renderer) Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(r.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrTemplate, name, err)
	}
	return tmpl, nil
}

// RenderHTML parses and executes text against ctx. Nothing is returned
// on failure, so a partial document is never written.
func (r *Renderer) RenderHTML(name, text string, ctx Context) ([]byte, error) {
	tmpl, err := r.Parse(name, text)
	if err != nil {
		return nil, err
	}
	return r.Execute(tmpl, ctx)
}

// Execute runs a parsed template against ctx.
func (r *Renderer) Execute(tmpl *template.Template, ctx Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, htmlData(ctx)); err != nil {
		return nil, classifyExecError(tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// htmlData marks inline images as trusted URLs so html/template keeps
// data: URLs in src attributes intact.
func htmlData(ctx Context) map[string]any {
	data := make(map[string]any, len(ctx))
	for k, v := range ctx {
		switch t := v.(type) {
		case ImageURL:
			data[k] = template.URL(t)
		case []ChartEntry:
			charts := make([]htmlChart, len(t))
			for i, c := range t {
				charts[i] = htmlChart{Name: c.Name, Title: c.Title, URL: template.URL(c.URL), Skipped: c.Skipped, Reason: c.Reason}
			}
			data[k] = charts
		default:
			data[k] = v
		}
	}
	return data
}

type htmlChart struct {
	Name    string
	Title   string
	URL     template.URL
	Skipped bool
	Reason  string
}

func classifyExecError(name string, err error) error {
	if m := missingKeyPattern.FindStringSubmatch(err.Error()); m != nil {
		return &MissingVariableError{Template: name, Name: m[1], Err: err}
	}
	if m := missingFieldPattern.FindStringSubmatch(err.Error()); m != nil {
		return &MissingVariableError{Template: name, Name: m[1], Err: err}
	}
	return fmt.Errorf("%w: execute %s: %v", ErrTemplate, name, err)
}
