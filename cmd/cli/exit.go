package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/scanreport/scanreport/pkg/aggregate"
	"github.com/scanreport/scanreport/pkg/config"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/pipeline"
	"github.com/scanreport/scanreport/pkg/profile"
	"github.com/scanreport/scanreport/pkg/report"
	"github.com/scanreport/scanreport/pkg/templateresolver"
	"github.com/scanreport/scanreport/pkg/ui"
)

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return defaults.ExitSuccess
	case errors.Is(err, finding.ErrMalformed), errors.Is(err, finding.ErrSchemaMismatch):
		return defaults.ExitInputError
	case errors.Is(err, finding.ErrMissingTemplateVariable),
		errors.Is(err, report.ErrTemplate),
		errors.Is(err, report.ErrChromeNotFound),
		errors.Is(err, pipeline.ErrRender),
		errors.Is(err, aggregate.ErrMissingColumn),
		errors.Is(err, finding.ErrEmptyInput):
		return defaults.ExitRenderError
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrMissingRequired),
		errors.Is(err, report.ErrConfig),
		errors.Is(err, templateresolver.ErrNotFound),
		errors.Is(err, templateresolver.ErrExists),
		errors.Is(err, profile.ErrUnknownTool),
		errors.Is(err, pipeline.ErrInputCount),
		errors.Is(err, context.Canceled):
		return defaults.ExitUserError
	default:
		return defaults.ExitInternalError
	}
}

// exitWithError prints err and exits with the code exitCode assigns it.
// Use this instead of ui.PrintError + os.Exit for consistent CLI error handling.
func exitWithError(err error) {
	code := exitCode(err)
	if code == defaults.ExitSuccess {
		os.Exit(code)
	}
	ui.PrintError(err.Error())
	os.Exit(code)
}

// exitWithUsage prints an error message followed by a usage hint, then exits.
func exitWithUsage(msg, usage string) {
	ui.PrintError(msg)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:", usage)
	os.Exit(defaults.ExitUserError)
}
