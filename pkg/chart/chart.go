// Package chart renders aggregate breakdowns to PNG files with
// go-chart. Every Render call builds its own chart value and writes one
// named artifact; there is no shared drawing state between calls.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/iohelper"
	"github.com/scanreport/scanreport/pkg/strutil"
)

// Kind selects the chart type.
type Kind string

const (
	Bar   Kind = "bar"
	Pie   Kind = "pie"
	Donut Kind = "donut"
)

// Placeholder is substituted for a chart that was skipped: a 1x1
// transparent PNG.
const Placeholder = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

const dataURLPrefix = "data:image/png;base64,"

// maxLabelLen bounds bar and slice labels.
const maxLabelLen = 28

// ErrUnknownKind is returned for an unsupported Spec.Kind.
var ErrUnknownKind = errors.New("chart: unknown chart kind")

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

// Spec describes one chart.
type Spec struct {
	// Name is the artifact name and the PNG base name.
	Name  string
	Title string
	Kind  Kind

	// YLabel names the value axis of bar charts.
	YLabel string

	// Colors maps a point label (case-insensitive) to a hex colour.
	// Labels without an entry take the palette in order.
	Colors map[string]string

	// TitleCase renders labels in title case ("HIGH" becomes "High").
	TitleCase bool

	// PathLabels trims long labels from the left so file names survive.
	PathLabels bool

	// ShowPercent appends the share of the total to pie and donut labels.
	ShowPercent bool
}

// Options are the rendering settings shared by every chart of a run.
type Options struct {
	Width   int
	Height  int
	Palette []string
}

// Artifact is a rendered chart on disk.
type Artifact struct {
	Name  string
	Title string
	Path  string
}

// DataURL reads the PNG back and returns it as a base64 data URL.
func (a Artifact) DataURL() (string, error) {
	data, err := a.Bytes()
	if err != nil {
		return "", err
	}
	return DataURL(data), nil
}

// Bytes reads the PNG file.
func (a Artifact) Bytes() ([]byte, error) {
	data, err := iohelper.ReadFile(a.Path, iohelper.ImageMaxSize)
	if err != nil {
		return nil, fmt.Errorf("chart: read %s: %w", a.Name, err)
	}
	return data, nil
}

// DataURL encodes PNG bytes as a data URL.
func DataURL(png []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURL reverses DataURL.
func DecodeDataURL(url string) ([]byte, error) {
	if !strings.HasPrefix(url, dataURLPrefix) {
		return nil, fmt.Errorf("chart: not a PNG data URL")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(url, dataURLPrefix))
}

// Renderer writes charts into one images directory.
type Renderer struct {
	dir  string
	opts Options
}

// NewRenderer returns a Renderer writing to dir. Zero option fields
// fall back to 1024x512 and the default palette.
func NewRenderer(dir string, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 512
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}
	return &Renderer{dir: dir, opts: opts}
}

// Dir returns the images directory.
func (r *Renderer) Dir() string { return r.dir }

// Render draws points and writes <dir>/<spec.Name>.png. Points with a
// non-positive value are dropped; if none remain the error matches
// finding.ErrEmptyInput.
func (r *Renderer) Render(spec Spec, points []Point) (Artifact, error) {
	values := r.values(spec, points)
	if len(values) == 0 {
		return Artifact{}, fmt.Errorf("chart %s: %w: no positive values", spec.Name, finding.ErrEmptyInput)
	}

	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case Bar:
		err = r.bar(spec, values).Render(gochart.PNG, &buf)
	case Pie:
		err = r.pie(spec, values).Render(gochart.PNG, &buf)
	case Donut:
		err = r.donut(spec, values).Render(gochart.PNG, &buf)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("chart %s: render: %w", spec.Name, err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("chart %s: %w", spec.Name, err)
	}
	path := filepath.Join(r.dir, spec.Name+".png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("chart %s: %w", spec.Name, err)
	}
	return Artifact{Name: spec.Name, Title: spec.Title, Path: path}, nil
}

func (r *Renderer) values(spec Spec, points []Point) []gochart.Value {
	total := 0.0
	for _, p := range points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	caser := cases.Title(language.English)

	var out []gochart.Value
	next := 0
	for _, p := range points {
		if p.Value <= 0 || math.IsNaN(p.Value) {
			continue
		}
		color, ok := spec.Colors[strings.ToLower(p.Label)]
		if !ok {
			color = r.opts.Palette[next%len(r.opts.Palette)]
			next++
		}

		label := p.Label
		switch {
		case spec.PathLabels:
			label = strutil.TruncateLeft(label, maxLabelLen)
		case spec.TitleCase:
			label = strutil.Truncate(caser.String(strings.ToLower(label)), maxLabelLen)
		default:
			label = strutil.Truncate(label, maxLabelLen)
		}
		if spec.ShowPercent && spec.Kind != Bar {
			label = fmt.Sprintf("%s (%.1f%%)", label, p.Value/total*100)
		}

		out = append(out, gochart.Value{
			Value: p.Value,
			Label: label,
			Style: gochart.Style{
				FillColor:   hex(color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	return out
}

func (r *Renderer) bar(spec Spec, values []gochart.Value) gochart.BarChart {
	maxValue := 0.0
	for _, v := range values {
		maxValue = math.Max(maxValue, v.Value)
	}
	barWidth := (r.opts.Width - 120) / (len(values) * 2)
	barWidth = max(12, min(barWidth, 80))

	return gochart.BarChart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: 14},
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		BarWidth:   barWidth,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.Style{FontSize: 8, TextRotationDegrees: 30},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Style: gochart.Style{FontSize: 9},
			Range: &gochart.ContinuousRange{Min: 0, Max: math.Ceil(maxValue * 1.1)},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: values,
	}
}

func (r *Renderer) pie(spec Spec, values []gochart.Value) gochart.PieChart {
	return gochart.PieChart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: 14},
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48}},
		SliceStyle: gochart.Style{FontSize: 9},
		Values:     values,
	}
}

func (r *Renderer) donut(spec Spec, values []gochart.Value) gochart.DonutChart {
	return gochart.DonutChart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: 14},
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48}},
		SliceStyle: gochart.Style{FontSize: 9},
		Values:     values,
	}
}

// hex parses "#RRGGBB" or "RRGGBB".
func hex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
