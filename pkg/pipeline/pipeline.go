// Package pipeline runs one report: load and normalize every input,
// aggregate and chart, build the rendering context, render, and write
// the artifacts.
//
// All inputs are loaded and normalized before anything is written, so a
// malformed or mismatched input leaves the output directory untouched.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/scanreport/scanreport/pkg/aggregate"
	"github.com/scanreport/scanreport/pkg/chart"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/loader"
	"github.com/scanreport/scanreport/pkg/metrics"
	"github.com/scanreport/scanreport/pkg/normalize"
	"github.com/scanreport/scanreport/pkg/profile"
	"github.com/scanreport/scanreport/pkg/report"
	"github.com/scanreport/scanreport/pkg/templateresolver"
	"github.com/scanreport/scanreport/templates"
)

var (
	// ErrInputCount is returned when the number of inputs does not
	// match the tool profile.
	ErrInputCount = errors.New("pipeline: wrong number of inputs")

	// ErrRender marks chart, PDF and file-writing failures.
	ErrRender = errors.New("pipeline: render failed")
)

// Job is one report invocation. Every path is explicit.
type Job struct {
	Tool   string
	Inputs []string

	// Template is a file path, a short template name, or
	// defaults.TemplateBuiltin for the embedded template of Tool.
	Template string

	OutDir string
	Format report.Format

	// ReportConfig is a YAML path or short config name. Empty uses
	// report.DefaultConfig.
	ReportConfig string

	// TopN overrides the bucket limit of truncated charts when > 0.
	TopN int

	CSVPath     string
	MetricsFile string
	ChromePath  string

	Logger *slog.Logger
}

// Result describes what a run wrote.
type Result struct {
	ReportPath string
	ImagesDir  string
	CSVPath    string
	Charts     []report.ChartEntry

	// Rows maps each table name to its row count.
	Rows map[string]int

	// Categories maps each table name to its rows counted by category.
	Categories map[string][]aggregate.Bucket

	Duration time.Duration
}

// Rendered returns the number of charts that were drawn.
func (r *Result) Rendered() int {
	n := 0
	for _, c := range r.Charts {
		if !c.Skipped {
			n++
		}
	}
	return n
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

// Run executes job.
func Run(ctx context.Context, job Job) (*Result, error) {
	start := time.Now()
	logger := orDefault(job.Logger).With(slog.String("tool", job.Tool))

	prof, err := profile.Get(job.Tool)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(job.ReportConfig)
	if err != nil {
		return nil, err
	}
	topN := cfg.Charts.TopN
	if job.TopN > 0 {
		topN = job.TopN
	}
	prof = prof.WithTopN(topN)

	if len(job.Inputs) != len(prof.Inputs) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrInputCount, job.Tool, len(prof.Inputs), len(job.Inputs))
	}

	// Stage 1: load and normalize everything before touching the disk.
	tables := make(map[string]finding.FindingSet, len(prof.Inputs))
	for i, in := range prof.Inputs {
		set, err := loadInput(job.Inputs[i], in)
		if err != nil {
			return nil, err
		}
		tables[in.Table] = set
		logger.Info("normalized input",
			slog.String("table", in.Table),
			slog.String("source", job.Inputs[i]),
			slog.Int("rows", set.Len()))
	}

	var tmpl *template.Template
	renderer := report.NewRenderer()
	if job.Format != report.FormatPDF {
		text, source, err := readTemplate(job.Template, job.Tool)
		if err != nil {
			return nil, err
		}
		if tmpl, err = renderer.Parse(job.Tool, text); err != nil {
			return nil, err
		}
		logger.Debug("parsed template", slog.String("source", source))
	} else {
		logger.Debug("template unused for native PDF", slog.String("template", job.Template))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: charts.
	res := &Result{
		ReportPath: defaults.ReportPath(job.OutDir, job.Tool, job.Format.Ext()),
		ImagesDir:  defaults.ImagesPath(job.OutDir, job.Tool),
		Rows:       make(map[string]int, len(tables)),
		Categories: make(map[string][]aggregate.Bucket, len(tables)),
	}
	if err := os.MkdirAll(res.ImagesDir, defaults.DirPerm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	var rec *metrics.Recorder
	if job.MetricsFile != "" {
		if rec, err = metrics.NewRecorder(); err != nil {
			return nil, err
		}
	}

	charts := chart.NewRenderer(res.ImagesDir, chart.Options{
		Width:   cfg.Charts.Width,
		Height:  cfg.Charts.Height,
		Palette: chart.PaletteFrom(cfg.Charts.ColorPalette),
	})
	for _, c := range prof.Charts {
		entry, err := drawChart(charts, c, tables[c.Table])
		if err != nil {
			return nil, err
		}
		if entry.Skipped {
			logger.Warn("chart skipped",
				slog.String("chart", c.Key),
				slog.String("reason", entry.Reason))
		} else {
			logger.Debug("chart rendered", slog.String("chart", c.Key))
		}
		if rec != nil {
			rec.ObserveChart(job.Tool, !entry.Skipped)
		}
		res.Charts = append(res.Charts, entry)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: context.
	title := prof.Title
	if cfg.Branding.Title != "" {
		title = cfg.Branding.Title
	}
	builder := report.NewContextBuilder(report.Meta{
		Tool:        job.Tool,
		Title:       title,
		Company:     cfg.Branding.CompanyName,
		Footer:      cfg.Branding.FooterText,
		AccentColor: cfg.Branding.AccentColor,
		Version:     defaults.Version,
	})
	for _, in := range prof.Inputs {
		builder.AddTable(in.Table, tables[in.Table])
		res.Rows[in.Table] = tables[in.Table].Len()
		if agg, err := aggregate.Count(tables[in.Table], aggregate.Spec{GroupBy: finding.ColumnCategory}); err == nil {
			res.Categories[in.Table] = agg.Buckets
		}
	}
	for _, entry := range res.Charts {
		builder.AddChart(entry)
	}
	for name, fn := range prof.Values {
		builder.Set(name, fn(tables))
	}
	doc := builder.Document()

	// Stage 4: render and write.
	var out []byte
	switch job.Format {
	case report.FormatHTML:
		out, err = renderer.Execute(tmpl, doc.Context())
	case report.FormatPDF:
		out, err = renderPDF(cfg, doc)
	case report.FormatPDFChrome:
		out, err = renderChrome(ctx, renderer, tmpl, doc, job, cfg)
	default:
		err = fmt.Errorf("%w: unknown format %q", ErrRender, job.Format)
	}
	if err != nil {
		return nil, err
	}
	if err := report.WriteFileAtomic(res.ReportPath, out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	logger.Info("report written", slog.String("path", res.ReportPath), slog.Int("bytes", len(out)))

	if job.CSVPath != "" {
		if err := writeCSV(job.CSVPath, doc.Tables, cfg); err != nil {
			return nil, err
		}
		res.CSVPath = job.CSVPath
		logger.Info("csv written", slog.String("path", job.CSVPath))
	}

	res.Duration = time.Since(start)
	if rec != nil {
		for _, in := range prof.Inputs {
			rec.ObserveTable(job.Tool, in.Table, tables[in.Table])
		}
		rec.ObserveRun(job.Tool, res.Duration, time.Now())
		if err := rec.WriteTextfile(job.MetricsFile); err != nil {
			return nil, err
		}
		logger.Info("metrics written", slog.String("path", job.MetricsFile))
	}
	return res, nil
}

func loadConfig(ref string) (*report.Config, error) {
	if ref == "" {
		return report.DefaultConfig(), nil
	}
	text, source, err := templateresolver.ReadText(ref, templateresolver.KindReportConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrConfig, err)
	}
	return report.ParseConfig(source, []byte(text))
}

func loadInput(path string, in profile.Input) (finding.FindingSet, error) {
	raw, err := loader.Load(path)
	if err != nil {
		return finding.FindingSet{}, err
	}
	n, err := normalize.Get(in.Normalizer)
	if err != nil {
		return finding.FindingSet{}, err
	}
	return n.Normalize(raw, path)
}

// readTemplate returns the template text for ref. The builtin keyword
// always reads the embedded copy.
func readTemplate(ref, tool string) (string, string, error) {
	if ref == defaults.TemplateBuiltin {
		rel := string(templateresolver.KindReport) + "/" + tool + ".html"
		data, err := templates.FS.ReadFile(rel)
		if err != nil {
			return "", "", fmt.Errorf("%w: builtin template for %s", templateresolver.ErrNotFound, tool)
		}
		return string(data), "embedded:" + rel, nil
	}
	return templateresolver.ReadText(ref, templateresolver.KindReport)
}

// drawChart aggregates and renders one chart. Empty input and a missing
// optional column skip the chart; any other failure is fatal.
func drawChart(r *chart.Renderer, c profile.Chart, set finding.FindingSet) (report.ChartEntry, error) {
	entry := report.ChartEntry{Name: c.Key, Title: c.Render.Title}

	pts, err := points(c, set)
	if err == nil {
		var art chart.Artifact
		if art, err = r.Render(c.Render, pts); err == nil {
			url, readErr := art.DataURL()
			if readErr != nil {
				return entry, fmt.Errorf("%w: %w", ErrRender, readErr)
			}
			entry.URL = report.ImageURL(url)
			return entry, nil
		}
	}
	if errors.Is(err, finding.ErrEmptyInput) || errors.Is(err, aggregate.ErrMissingColumn) {
		entry.Skipped = true
		entry.Reason = err.Error()
		entry.URL = chart.Placeholder
		return entry, nil
	}
	return entry, fmt.Errorf("%w: %w", ErrRender, err)
}

func points(c profile.Chart, set finding.FindingSet) ([]chart.Point, error) {
	if c.Proportions {
		shares, err := aggregate.Proportions(set, c.Group)
		if err != nil {
			return nil, err
		}
		pts := make([]chart.Point, len(shares))
		for i, s := range shares {
			pts[i] = chart.Point{Label: s.Key, Value: s.Ratio}
		}
		return pts, nil
	}
	agg, err := aggregate.Count(set, c.Group)
	if err != nil {
		return nil, err
	}
	pts := make([]chart.Point, len(agg.Buckets))
	for i, b := range agg.Buckets {
		pts[i] = chart.Point{Label: b.Key, Value: float64(b.Count)}
	}
	return pts, nil
}

func renderPDF(cfg *report.Config, doc report.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := report.NewPDFWriter(cfg).Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// renderChrome renders HTML into a temporary file next to the report
// and prints it with headless Chrome.
func renderChrome(ctx context.Context, r *report.Renderer, tmpl *template.Template, doc report.Document, job Job, cfg *report.Config) ([]byte, error) {
	html, err := r.Execute(tmpl, doc.Context())
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(defaults.ToolDir(job.OutDir, job.Tool), ".report-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	pdf, err := report.HTMLToPDF(ctx, filepath.Clean(tmp.Name()), report.ChromeOptions{
		ExecPath:  job.ChromePath,
		Landscape: cfg.Export.Landscape,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return pdf, nil
}

func writeCSV(path string, tables []report.Table, cfg *report.Config) error {
	var buf bytes.Buffer
	opts := report.CSVOptions{ExcelCompatible: cfg.Export.CSVExcelCompatible, SanitizeFormulas: true}
	if err := report.WriteCSV(&buf, tables, opts); err != nil {
		return fmt.Errorf("%w: csv: %w", ErrRender, err)
	}
	if err := report.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: csv: %w", ErrRender, err)
	}
	return nil
}
