package report

import (
	"bytes"
	"os"
	"testing"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/chart"
	"github.com/scanreport/scanreport/pkg/finding"
)

func renderPDF(t *testing.T, doc Document, cfg *Config) []byte {
	t.Helper()
	w := NewPDFWriter(cfg)
	w.noCompress = true // keep text searchable in raw bytes

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, doc))
	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, []byte("%PDF-")), "missing PDF header")
	require.NoError(t, pdfapi.Validate(bytes.NewReader(raw), nil), "pdfcpu validation")
	return raw
}

func pdfDocument(t *testing.T) Document {
	t.Helper()
	art, err := chart.NewRenderer(t.TempDir(), chart.Options{Width: 400, Height: 200}).
		Render(chart.Spec{Name: "severity_plot", Title: "Issues by Severity", Kind: chart.Bar}, []chart.Point{{Label: "HIGH", Value: 1}, {Label: "LOW", Value: 1}})
	require.NoError(t, err)
	url, err := art.DataURL()
	require.NoError(t, err)

	b := NewContextBuilder(testMeta())
	b.AddTable("data", banditSet())
	b.AddChart(ChartEntry{Name: "severity_plot", Title: "Issues by Severity", URL: ImageURL(url)})
	b.AddChart(ChartEntry{Name: "cwe_plot", Title: "Top CWEs", Skipped: true, Reason: "finding: empty input"})
	return b.Document()
}

func TestPDFWriter_Valid(t *testing.T) {
	t.Parallel()

	raw := renderPDF(t, pdfDocument(t), nil)

	count, err := pdfapi.PageCount(bytes.NewReader(raw), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "cover, charts, findings")

	text := string(raw)
	assert.Contains(t, text, "Bandit Report")
	assert.Contains(t, text, "Issues by Severity")
	assert.Contains(t, text, "Chart unavailable")
	assert.Contains(t, text, "app/db.py")
	assert.Contains(t, text, "CWE-89")
}

func TestPDFWriter_ManyRowsPaginate(t *testing.T) {
	t.Parallel()

	rows := make([]finding.Finding, 120)
	for i := range rows {
		rows[i] = finding.Finding{Category: "MEDIUM", Location: "pkg/file.py", Description: finding.Some("Ünïcode détail")}
	}
	b := NewContextBuilder(testMeta())
	b.AddTable("issues_data", finding.NewSet(finding.KindIssues, "", rows))

	cfg := DefaultConfig()
	cfg.Export.Landscape = true
	raw := renderPDF(t, b.Document(), cfg)

	count, err := pdfapi.PageCount(bytes.NewReader(raw), nil)
	require.NoError(t, err)
	assert.Greater(t, count, 2)
}

func TestPDFWriter_EmptyTable(t *testing.T) {
	t.Parallel()

	b := NewContextBuilder(testMeta())
	b.AddTable("data", finding.NewSet(finding.KindSecrets, "", nil))
	raw := renderPDF(t, b.Document(), nil)
	assert.Contains(t, string(raw), "No findings.")
}

func TestRGB(t *testing.T) {
	t.Parallel()

	assert.Equal(t, [3]int{0, 102, 204}, rgb("#0066cc"))
	assert.Equal(t, [3]int{255, 255, 255}, rgb("#fff"))
	assert.Equal(t, [3]int{30, 41, 59}, rgb("blue"))
	assert.Equal(t, [3]int{30, 41, 59}, rgb("#zzzzzz"))
}

func TestFindChrome_Skip(t *testing.T) {
	if testing.Short() {
		t.Skip("headless chrome conversion skipped in short mode")
	}
	if _, err := FindChrome(); err != nil {
		t.Skip("no chrome available")
	}

	dir := t.TempDir()
	path := dir + "/r.html"
	require.NoError(t, os.WriteFile(path, []byte("<html><body><h1>report</h1></body></html>"), 0o644))

	pdf, err := HTMLToPDF(t.Context(), path, ChromeOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}
