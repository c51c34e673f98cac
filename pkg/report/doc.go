// Package report turns normalized findings and rendered charts into the
// final report artifact.
//
// The flow is:
//
//	b := report.NewContextBuilder(meta)
//	b.AddTable("data", set)
//	b.AddChart(report.ChartEntry{Name: "severity_plot", URL: url})
//	doc := b.Document()
//
//	html, err := report.NewRenderer().RenderHTML("bandit", tmplText, doc.Context())
//	err = report.WriteFileAtomic(path, html)
//
// Templates use html/template with sprig functions. Every variable a
// template references must exist in the context; a missing one fails
// the render with a *MissingVariableError naming it.
//
// Besides HTML the package writes native PDFs through fpdf and can hand
// the rendered HTML to headless Chrome for a print-quality PDF.
package report
