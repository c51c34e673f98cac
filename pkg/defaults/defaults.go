// Package defaults provides canonical default values for the whole
// report pipeline. This is the single source of truth for directory
// names, chart sizes, and limits.
//
// Usage:
//
//	renderer := chart.NewRenderer(dir, chart.Options{Width: defaults.ChartWidth})
//	spec.TopN = defaults.TopN
package defaults

import "path/filepath"

// Version is the current scan-report version
const Version = "1.2.0"

// ToolName is the binary name used in usage text and report footers.
const ToolName = "scan-report"

// ============================================================================
// OUTPUT LAYOUT
// ============================================================================
//
// Reports are written to <out_dir>/<tool>/<tool>-report.<ext> and chart
// images to <out_dir>/<tool>/images/.
// ============================================================================

const (
	// OutDir is the default output root (current directory).
	OutDir = "."

	// ImagesDir is the chart subdirectory under each tool directory.
	ImagesDir = "images"

	// ReportSuffix is appended to the tool name for the report file.
	ReportSuffix = "-report"

	// DirPerm is the permission for created directories.
	DirPerm = 0o755

	// FilePerm is the permission for written files.
	FilePerm = 0o644
)

// ToolDir returns <outDir>/<tool>.
func ToolDir(outDir, tool string) string {
	return filepath.Join(outDir, tool)
}

// ImagesPath returns <outDir>/<tool>/images.
func ImagesPath(outDir, tool string) string {
	return filepath.Join(outDir, tool, ImagesDir)
}

// ReportPath returns <outDir>/<tool>/<tool>-report.<ext>.
func ReportPath(outDir, tool, ext string) string {
	return filepath.Join(outDir, tool, tool+ReportSuffix+"."+ext)
}

// ============================================================================
// CHARTS
// ============================================================================

const (
	// TopN is the default bucket limit for "top files" charts.
	TopN = 10

	// ChartWidth is the default PNG width in pixels.
	ChartWidth = 1024

	// ChartHeight is the default PNG height in pixels.
	ChartHeight = 512
)

// ============================================================================
// REPORT
// ============================================================================

const (
	// TemplateBuiltin selects the embedded template for a tool instead
	// of a file path.
	TemplateBuiltin = "builtin"

	// TemplateDir is the on-disk directory searched for short template
	// names before the embedded copies.
	TemplateDir = "templates"

	// TemplateDirEnv overrides the template root directory.
	TemplateDirEnv = "SCAN_REPORT_TEMPLATE_DIR"

	// PDFPageSize is the default native PDF page size.
	PDFPageSize = "A4"

	// ChromeTimeoutSeconds bounds the headless Chrome PDF conversion.
	ChromeTimeoutSeconds = 60

	// ShutdownGraceSeconds is how long a second signal is awaited
	// before a forced exit.
	ShutdownGraceSeconds = 5
)
