// Package templates embeds the bundled report templates and the default
// report profile.
//
// The CLI uses these when a template argument of "builtin" is given, and
// "scan-report templates <dir>" writes them out as a starting point for
// customized reports.
//
// Usage:
//
//	data, _ := templates.FS.ReadFile("html/bandit.html")
package templates

import "embed"

// FS contains the HTML report templates (one per tool) and the report
// configs. Subdirectory structure matches the on-disk templates/ layout
// minus this Go file.
//
//go:embed html/*.html report-configs/*.yaml
var FS embed.FS
