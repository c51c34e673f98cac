package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/scanreport/scanreport/pkg/defaults"
)

// Formats lists the accepted -format values.
var Formats = []string{"html", "pdf", "pdf-chrome"}

// Config holds the options of one report invocation.
type Config struct {
	// Tool is the subcommand (bandit, sonarqube, safety, trufflehog).
	Tool string

	// Positional arguments
	Inputs       []string // Scanner JSON exports, in profile order
	TemplatePath string   // Report template, or "builtin"

	// Output settings
	OutDir      string // Output root; the report lands in <OutDir>/<Tool>/
	Format      string // html, pdf, pdf-chrome
	CSVPath     string // Also export the findings table as CSV (empty = off)
	MetricsFile string // Prometheus textfile output (empty = off)

	// Report settings
	ReportConfig string // YAML report profile (empty = built-in defaults)
	TopN         int    // Override the top-N limit of truncated charts (0 = profile default)
	ChromePath   string // Chrome/Chromium binary for pdf-chrome (empty = auto-detect)

	// Console settings
	Verbose bool // Debug logging
	Silent  bool // Errors only
	NoColor bool // Disable colored output
}

// ParseArgs parses the flags and positionals of a report subcommand.
// inputNames labels the expected JSON inputs for usage text, e.g.
// {"issues_json", "hotspots_json"}. Flags must precede positionals.
// flag.ErrHelp is returned unchanged for -h.
func ParseArgs(tool string, inputNames []string, args []string, stderr io.Writer) (*Config, error) {
	cfg := &Config{Tool: tool}

	fs := flag.NewFlagSet(tool, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s %s [flags] %s\n\nFlags:\n", defaults.ToolName, tool, Synopsis(inputNames))
		fs.PrintDefaults()
	}

	// === OUTPUT ===
	fs.StringVar(&cfg.OutDir, "out-dir", defaults.OutDir, "Output root directory")
	fs.StringVar(&cfg.OutDir, "o", defaults.OutDir, "Output root (alias)")
	fs.StringVar(&cfg.Format, "format", "html", "Report format: "+strings.Join(Formats, ", "))
	fs.StringVar(&cfg.CSVPath, "csv", "", "Also export the normalized findings as CSV")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics")

	// === REPORT ===
	fs.StringVar(&cfg.ReportConfig, "config", "", "Report profile YAML (branding, chart size, palette)")
	fs.IntVar(&cfg.TopN, "top-n", 0, "Bucket limit for top-N charts (0 = default)")
	fs.StringVar(&cfg.ChromePath, "chrome-path", "", "Chrome binary for -format pdf-chrome")

	// === CONSOLE ===
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose (alias)")
	fs.BoolVar(&cfg.Silent, "silent", false, "Only print errors")
	fs.BoolVar(&cfg.Silent, "s", false, "Silent (alias)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.NoColor, "nc", false, "No color (alias)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	pos := fs.Args()
	if len(pos) != len(inputNames)+1 {
		return nil, fmt.Errorf("%w: expected %d positional arguments (%s), got %d",
			ErrMissingRequired, len(inputNames)+1, Synopsis(inputNames), len(pos))
	}
	cfg.Inputs = slices.Clone(pos[:len(inputNames)])
	cfg.TemplatePath = pos[len(inputNames)]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Synopsis renders positional names as "<a> <b> <template>".
func Synopsis(inputNames []string) string {
	parts := make([]string, 0, len(inputNames)+1)
	for _, n := range inputNames {
		parts = append(parts, "<"+n+">")
	}
	return strings.Join(append(parts, "<template>"), " ")
}

// Validate checks option values and their combinations.
func (c *Config) Validate() error {
	if c.Tool == "" {
		return fmt.Errorf("%w: tool", ErrMissingRequired)
	}
	for i, in := range c.Inputs {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("%w: input %d is empty", ErrMissingRequired, i+1)
		}
	}
	if strings.TrimSpace(c.TemplatePath) == "" {
		return fmt.Errorf("%w: template path", ErrMissingRequired)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: unknown format %q (want %s)", ErrInvalidConfig, c.Format, strings.Join(Formats, ", "))
	}
	if c.TopN < 0 {
		return fmt.Errorf("%w: -top-n must not be negative", ErrInvalidConfig)
	}
	if c.Verbose && c.Silent {
		return fmt.Errorf("%w: -verbose and -silent are mutually exclusive", ErrInvalidConfig)
	}
	if c.ChromePath != "" && c.Format != "pdf-chrome" {
		return fmt.Errorf("%w: -chrome-path requires -format pdf-chrome", ErrInvalidConfig)
	}
	if c.OutDir == "" {
		c.OutDir = defaults.OutDir
	}
	return nil
}

// UsesBuiltinTemplate reports whether the embedded template was requested.
func (c *Config) UsesBuiltinTemplate() bool {
	return c.TemplatePath == defaults.TemplateBuiltin
}
