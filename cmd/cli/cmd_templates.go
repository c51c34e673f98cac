package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/scanreport/scanreport/pkg/config"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/templateresolver"
	"github.com/scanreport/scanreport/pkg/ui"
)

// runTemplates handles `scan-report templates [-force] [dir]`. The
// written tree can be pointed at with SCAN_REPORT_TEMPLATE_DIR.
func runTemplates(args []string) error {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s templates [-force] [dir]\n\nFlags:\n", defaults.ToolName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: expected at most one directory, got %d", config.ErrInvalidConfig, fs.NArg())
	}
	dir := defaults.TemplateDir
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	written, err := templateresolver.Extract(dir, *force)
	for _, path := range written {
		ui.PrintPath("Wrote", path)
	}
	if err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("%d files written to %s", len(written), dir))
	return nil
}
