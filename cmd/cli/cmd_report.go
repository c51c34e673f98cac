package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/scanreport/scanreport/pkg/aggregate"
	"github.com/scanreport/scanreport/pkg/cli"
	"github.com/scanreport/scanreport/pkg/config"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/pipeline"
	"github.com/scanreport/scanreport/pkg/profile"
	"github.com/scanreport/scanreport/pkg/report"
	"github.com/scanreport/scanreport/pkg/ui"
)

// runReport handles `scan-report <tool> [flags] <inputs...> <template>`.
func runReport(tool string, args []string) error {
	prof, err := profile.Get(tool)
	if err != nil {
		return err
	}
	cfg, err := config.ParseArgs(tool, prof.InputArgs(), args, os.Stderr)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	ui.SetSilent(cfg.Silent)
	ui.SetNoColor(cfg.NoColor)
	logger := cli.NewLogger(os.Stderr, cli.LogLevel(cfg.Verbose, cfg.Silent))

	ui.PrintBanner()
	ui.PrintConfigLine("Tool", tool)
	for i, in := range prof.Inputs {
		ui.PrintConfigLine(in.Arg, cfg.Inputs[i])
	}
	ui.PrintConfigLine("Template", cfg.TemplatePath)
	ui.PrintConfigLine("Format", cfg.Format)
	ui.PrintConfigLine("Output", defaults.ToolDir(cfg.OutDir, tool))
	ui.PrintConfigLine("Config", cfg.ReportConfig)
	ui.PrintDivider()

	ctx, cancel := cli.SignalContext(defaults.ShutdownGraceSeconds * time.Second)
	defer cancel()

	res, err := pipeline.Run(ctx, pipeline.Job{
		Tool:         tool,
		Inputs:       cfg.Inputs,
		Template:     cfg.TemplatePath,
		OutDir:       cfg.OutDir,
		Format:       format,
		ReportConfig: cfg.ReportConfig,
		TopN:         cfg.TopN,
		CSVPath:      cfg.CSVPath,
		MetricsFile:  cfg.MetricsFile,
		ChromePath:   cfg.ChromePath,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	printSummary(prof, cfg, res)
	return nil
}

// printSummary shows what was written and a per-table category
// breakdown.
func printSummary(prof profile.Profile, cfg *config.Config, res *pipeline.Result) {
	if ui.IsSilent() {
		return
	}
	ui.PrintSection("Summary")
	for _, table := range prof.Tables() {
		ui.PrintBrackets(table, categoryBrackets(res.Categories[table], res.Rows[table])...)
	}
	ui.PrintStat("Charts", fmt.Sprintf("%d rendered, %d skipped", res.Rendered(), len(res.Charts)-res.Rendered()))
	for _, c := range res.Charts {
		if c.Skipped {
			ui.PrintWarning(fmt.Sprintf("%s skipped: %s", c.Name, c.Reason))
		}
	}
	ui.PrintStat("Duration", res.Duration.Round(time.Millisecond).String())
	ui.PrintPath("Report", res.ReportPath)
	if res.CSVPath != "" {
		ui.PrintPath("CSV", res.CSVPath)
	}
	if cfg.MetricsFile != "" {
		ui.PrintPath("Metrics", cfg.MetricsFile)
	}
	ui.PrintSuccess(fmt.Sprintf("%s report written", prof.Tool))
}

// categoryBrackets colours severity-like categories by severity and
// leaves the rest (safety package names, trufflehog detectors) neutral.
func categoryBrackets(buckets []aggregate.Bucket, rows int) []ui.BracketPart {
	if len(buckets) == 0 {
		return []ui.BracketPart{ui.CategoryBracket("rows", rows)}
	}
	parts := make([]ui.BracketPart, 0, len(buckets))
	for _, b := range buckets {
		if isSeverity(b.Key) {
			parts = append(parts, ui.SeverityBracket(b.Key, b.Count))
		} else {
			parts = append(parts, ui.CategoryBracket(b.Key, b.Count))
		}
	}
	return parts
}

func isSeverity(label string) bool {
	return finding.ParseSeverity(label) != finding.Info || strings.EqualFold(strings.TrimSpace(label), "info")
}
