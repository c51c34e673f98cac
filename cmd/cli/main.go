package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/profile"
	"github.com/scanreport/scanreport/pkg/ui"
)

func printUsage() {
	ui.PrintBanner()
	os.Stderr.Sync() // Sync stderr before switching to stdout

	fmt.Println(ui.SectionStyle.Render("USAGE"))
	fmt.Println()
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render(defaults.ToolName+" bandit     [flags] <findings_json> <template>"))
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render(defaults.ToolName+" sonarqube  [flags] <issues_json> <hotspots_json> <template>"))
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render(defaults.ToolName+" safety     [flags] <findings_json> <template>"))
	fmt.Printf("  %s\n", ui.ConfigValueStyle.Render(defaults.ToolName+" trufflehog [flags] <findings_json> <template>"))
	fmt.Println()
	fmt.Printf("  %s\n", ui.StatLabelStyle.Render(`<template> is a file, a short name resolved under ./templates/html, or "builtin".`))
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("COMMANDS"))
	fmt.Println()
	fmt.Printf("  %s  %s\n", ui.StatValueStyle.Render("<tool>   "), "Render a report for one of: "+strings.Join(profile.Tools(), ", "))
	fmt.Printf("  %s  %s\n", ui.StatValueStyle.Render("templates"), "Write the bundled templates and report config to a directory")
	fmt.Printf("  %s  %s\n", ui.StatValueStyle.Render("version  "), "Print the version")
	fmt.Printf("  %s  %s\n", ui.StatValueStyle.Render("help     "), "Show this help")
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("REPORT FLAGS"))
	fmt.Println()
	fmt.Println("    -out-dir, -o DIR     Output root; report goes to DIR/<tool>/<tool>-report.<ext>")
	fmt.Println("    -format FORMAT       html (default), pdf (native), pdf-chrome (headless Chrome)")
	fmt.Println("    -config FILE         Report profile YAML (branding, chart size, palette)")
	fmt.Println("    -top-n N             Bucket limit for top-N charts")
	fmt.Println("    -csv FILE            Also export the normalized findings as CSV")
	fmt.Println("    -metrics-file FILE   Write Prometheus textfile metrics")
	fmt.Println("    -chrome-path PATH    Chrome binary for -format pdf-chrome")
	fmt.Println("    -v, -s, -nc          Verbose, silent, no color")
	fmt.Println()

	fmt.Println(ui.SectionStyle.Render("EXIT CODES"))
	fmt.Println()
	fmt.Println("    0 report written   2 usage or config error   3 malformed or mismatched input")
	fmt.Println("    4 render failure   5 internal error")
	fmt.Println()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(defaults.ExitUserError)
	}

	switch cmd := os.Args[1]; cmd {
	case "templates", "init":
		if err := runTemplates(os.Args[2:]); err != nil {
			exitWithError(err)
		}
	case "-h", "--help", "help":
		printUsage()
		os.Exit(defaults.ExitSuccess)
	case "-version", "--version", "version":
		fmt.Printf("%s v%s\n", defaults.ToolName, defaults.Version)
		os.Exit(defaults.ExitSuccess)
	default:
		if _, err := profile.Get(cmd); err != nil {
			exitWithUsage(fmt.Sprintf("unknown command %q", cmd), defaults.ToolName+" help")
		}
		if err := runReport(cmd, os.Args[2:]); err != nil {
			exitWithError(err)
		}
	}
}
