package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	gofpdf "github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scanreport/scanreport/pkg/chart"
	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/strutil"
)

// PDFWriter renders a Document as a native PDF: a cover page with run
// metadata and totals, one page section per chart, and the findings
// tables.
type PDFWriter struct {
	cfg        *Config
	noCompress bool
}

// NewPDFWriter returns a writer using cfg for branding and page setup.
// A nil cfg uses DefaultConfig.
func NewPDFWriter(cfg *Config) *PDFWriter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &PDFWriter{cfg: cfg}
}

// Write renders doc to out.
func (w *PDFWriter) Write(out io.Writer, doc Document) error {
	orientation := "P"
	if w.cfg.Export.Landscape {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", w.cfg.Export.PageSize, "")
	pdf.SetCompression(!w.noCompress)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Meta.Title, true)
	pdf.SetAuthor(doc.Meta.Company, true)
	pdf.SetCreator("scan-report "+doc.Meta.Version, true)
	pdf.SetCreationDate(doc.Meta.GeneratedAt)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("%s - page %d/{nb}", doc.Meta.Footer, pdf.PageNo())
		pdf.CellFormat(0, 8, tr(footer), "", 0, "C", false, 0, "")
	})

	accent := rgb(doc.Meta.AccentColor)
	w.cover(pdf, tr, doc, accent)
	w.charts(pdf, tr, doc)
	for _, t := range doc.Tables {
		w.table(pdf, tr, t, accent)
	}

	if pdf.Err() {
		return fmt.Errorf("pdf: %w", pdf.Error())
	}
	return pdf.Output(out)
}

func (w *PDFWriter) cover(pdf *gofpdf.Fpdf, tr func(string) string, doc Document, accent [3]int) {
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	pdf.SetFillColor(accent[0], accent[1], accent[2])
	pdf.Rect(0, 0, pageW, 40, "F")
	pdf.SetY(12)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(doc.Meta.Title), "", 1, "L", false, 0, "")
	if doc.Meta.Company != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, tr(doc.Meta.Company), "", 1, "L", false, 0, "")
	}

	pdf.SetY(50)
	pdf.SetTextColor(60, 60, 60)
	labelW := 45.0
	for _, kv := range [][2]string{
		{"Tool", doc.Meta.Tool},
		{"Generated", doc.Meta.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{"Run ID", doc.Meta.RunID},
	} {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 7, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	tableW := pageW - left - right
	pdf.CellFormat(tableW*0.6, 8, "Table", "1", 0, "L", true, 0, "")
	pdf.CellFormat(tableW*0.4, 8, "Findings", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 9)
	total := 0
	for _, t := range doc.Tables {
		pdf.CellFormat(tableW*0.6, 7, tr(t.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(tableW*0.4, 7, strconv.Itoa(len(t.Rows)), "1", 1, "C", false, 0, "")
		total += len(t.Rows)
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(tableW*0.6, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(tableW*0.4, 7, strconv.Itoa(total), "1", 1, "C", false, 0, "")
}

func (w *PDFWriter) charts(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	if len(doc.Charts) == 0 {
		return
	}
	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	imgW := pageW - left - right
	imgH := imgW * float64(w.cfg.Charts.Height) / float64(w.cfg.Charts.Width)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, "Charts", "", 1, "L", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for _, c := range doc.Charts {
		if pdf.GetY()+imgH+14 > pageH-bottom-15 {
			pdf.AddPage()
			pdf.SetY(top)
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 7, tr(c.Title), "", 1, "L", false, 0, "")

		if c.Skipped {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(128, 128, 128)
			pdf.MultiCell(0, 5, tr("Chart unavailable: "+c.Reason), "", "L", false)
			pdf.Ln(3)
			continue
		}
		png, err := chart.DecodeDataURL(string(c.URL))
		if err != nil {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, tr("Chart unavailable: "+err.Error()), "", "L", false)
			continue
		}
		pdf.RegisterImageOptionsReader(c.Name, opts, bytes.NewReader(png))
		pdf.ImageOptions(c.Name, left, pdf.GetY(), imgW, imgH, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + imgH + 4)
	}
}

// tableColumns holds the widths (as page fractions) and titles of the
// findings table.
var tableColumns = []struct {
	title string
	frac  float64
}{
	{"Category", 0.14},
	{"Location", 0.30},
	{"Identifier", 0.18},
	{"Description", 0.38},
}

func (w *PDFWriter) table(pdf *gofpdf.Fpdf, tr func(string) string, t Table, accent [3]int) {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	tableW := pageW - left - right
	title := cases.Title(language.English)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Findings: %s (%d)", strings.ReplaceAll(t.Name, "_", " "), len(t.Rows))), "", 1, "L", false, 0, "")

	header := func() {
		pdf.SetFillColor(accent[0], accent[1], accent[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		for _, col := range tableColumns {
			pdf.CellFormat(tableW*col.frac, 8, col.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	if len(t.Rows) == 0 {
		pdf.SetTextColor(22, 163, 74)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(tableW, 7, "No findings.", "1", 1, "C", false, 0, "")
		return
	}

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	pdf.SetFont("Helvetica", "", 8)
	for i, r := range t.Rows {
		if pdf.GetY()+6 > pageH-bottom-15 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		sev := rgb(finding.Severity(r.Severity).Color())
		cells := []string{
			title.String(strings.ToLower(r.Category)),
			strutil.TruncateLeft(r.Location, 48),
			r.Identifier.Or("-"),
			strutil.Truncate(r.Description.Or("-"), 64),
		}
		for j, col := range tableColumns {
			if j == 0 {
				pdf.SetTextColor(sev[0], sev[1], sev[2])
			} else {
				pdf.SetTextColor(60, 60, 60)
			}
			pdf.CellFormat(tableW*col.frac, 6, tr(cells[j]), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// rgb parses "#RRGGBB" or "#RGB". Invalid input yields slate gray.
func rgb(hex string) [3]int {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return [3]int{30, 41, 59}
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return [3]int{30, 41, 59}
	}
	return [3]int{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}
