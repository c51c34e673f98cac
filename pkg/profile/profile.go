// Package profile describes each supported scanner as data: the inputs
// it reads, the tables it produces, the charts drawn over them and the
// extra template values it exposes.
package profile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/scanreport/scanreport/pkg/aggregate"
	"github.com/scanreport/scanreport/pkg/chart"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/normalize"
)

// ErrUnknownTool is returned by Get for unsupported tools.
var ErrUnknownTool = errors.New("profile: unknown tool")

// Input is one positional JSON input of a tool.
type Input struct {
	// Arg names the positional argument in usage text.
	Arg string

	// Table is the template key the normalized rows are exposed under.
	Table string

	// Normalizer is the normalize registry key.
	Normalizer string
}

// Chart is one chart drawn over a table.
type Chart struct {
	// Key is the template variable the image is exposed under.
	Key   string
	Table string

	// Render carries the chart kind, title and label styling. Its Name
	// is the PNG base name under the images directory.
	Render chart.Spec

	Group aggregate.Spec

	// Proportions plots shares of the filtered set instead of counts.
	Proportions bool
}

// ValueFunc derives a template value from the normalized tables.
type ValueFunc func(tables map[string]finding.FindingSet) any

// Profile is the full description of one tool's report.
type Profile struct {
	Tool   string
	Title  string
	Inputs []Input
	Charts []Chart

	// Values are extra template variables, keyed by name.
	Values map[string]ValueFunc
}

// InputArgs returns the positional argument names, in order.
func (p Profile) InputArgs() []string {
	args := make([]string, len(p.Inputs))
	for i, in := range p.Inputs {
		args[i] = in.Arg
	}
	return args
}

// Tables returns the table names, in input order.
func (p Profile) Tables() []string {
	names := make([]string, len(p.Inputs))
	for i, in := range p.Inputs {
		names[i] = in.Table
	}
	return names
}

// WithTopN returns a copy whose truncated charts keep n buckets. A
// non-positive n returns p unchanged.
func (p Profile) WithTopN(n int) Profile {
	if n <= 0 {
		return p
	}
	out := p
	out.Charts = slices.Clone(p.Charts)
	for i := range out.Charts {
		if out.Charts[i].Group.TopN > 0 {
			out.Charts[i].Group.TopN = n
		}
	}
	return out
}

// Validate checks that every input names a registered normalizer and
// every chart reads a declared table.
func (p Profile) Validate() error {
	if len(p.Inputs) == 0 {
		return fmt.Errorf("profile %s: no inputs", p.Tool)
	}
	tables := p.Tables()
	for _, in := range p.Inputs {
		if _, err := normalize.Get(in.Normalizer); err != nil {
			return fmt.Errorf("profile %s: %w", p.Tool, err)
		}
	}
	seen := map[string]bool{}
	for _, c := range p.Charts {
		if !slices.Contains(tables, c.Table) {
			return fmt.Errorf("profile %s: chart %s reads unknown table %q", p.Tool, c.Key, c.Table)
		}
		if seen[c.Key] {
			return fmt.Errorf("profile %s: duplicate chart %s", p.Tool, c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

var profiles = map[string]Profile{}

func register(p Profile) {
	profiles[p.Tool] = p
}

func init() {
	register(bandit())
	register(sonarqube())
	register(safety())
	register(trufflehog())
}

// Get returns the profile of tool.
func Get(tool string) (Profile, error) {
	p, ok := profiles[tool]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownTool, tool, strings.Join(Tools(), ", "))
	}
	return p, nil
}

// Tools returns the supported tool names, sorted.
func Tools() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func bar(name, title, ylabel string) chart.Spec {
	return chart.Spec{Name: name, Title: title, Kind: chart.Bar, YLabel: ylabel}
}

func bandit() Profile {
	severity := bar("severity_counts", "Number of Issues per Severity Level", "Issues")
	severity.Colors = chart.SeverityColors
	severity.TitleCase = true

	files := bar("file_counts", "Number of Issues per File (Top 10)", "Issues")
	files.PathLabels = true

	confidence := bar("confidence_counts", "Distribution of Confidence Levels", "Issues")
	confidence.TitleCase = true

	return Profile{
		Tool:  "bandit",
		Title: "Bandit Security Report",
		Inputs: []Input{
			{Arg: "findings_json", Table: "data", Normalizer: "bandit"},
		},
		Charts: []Chart{
			{Key: "severity_plot", Table: "data", Render: severity,
				Group: aggregate.Spec{GroupBy: finding.ColumnCategory}},
			{Key: "file_plot", Table: "data", Render: files,
				Group: aggregate.Spec{GroupBy: finding.ColumnLocation, TopN: defaults.TopN}},
			{Key: "confidence_plot", Table: "data", Render: confidence,
				Group: aggregate.Spec{GroupBy: finding.ExtraColumn("confidence")}},
			{Key: "cwe_plot", Table: "data", Render: bar("cwe_counts", "Distribution of CWE IDs (Top 10)", "Issues"),
				Group: aggregate.Spec{GroupBy: finding.ColumnIdentifier, TopN: defaults.TopN}},
		},
	}
}

func sonarqube() Profile {
	severity := bar("severity_counts", "Number of Issues per Severity Level", "Issues")
	severity.Colors = chart.SeverityColors
	severity.TitleCase = true

	files := bar("file_counts", "Top 10 Components with Most Issues", "Issues")
	files.PathLabels = true

	types := bar("issue_type_counts", "Distribution of Issue Types", "Issues")
	types.TitleCase = true

	prob := bar("vulnerability_prob_counts", "Distribution of Hotspots by Vulnerability Probability", "Hotspots")
	prob.Colors = chart.SeverityColors
	prob.TitleCase = true

	hotspotFiles := bar("hotspot_file_counts", "Top 10 Components with Most Hotspots", "Hotspots")
	hotspotFiles.PathLabels = true

	return Profile{
		Tool:  "sonarqube",
		Title: "SonarQube Analysis Report",
		Inputs: []Input{
			{Arg: "issues_json", Table: "issues_data", Normalizer: "sonarqube-issues"},
			{Arg: "hotspots_json", Table: "hotspots_data", Normalizer: "sonarqube-hotspots"},
		},
		Charts: []Chart{
			{Key: "severity_plot", Table: "issues_data", Render: severity,
				Group: aggregate.Spec{GroupBy: finding.ColumnCategory}},
			{Key: "file_plot", Table: "issues_data", Render: files,
				Group: aggregate.Spec{GroupBy: finding.ColumnLocation, TopN: defaults.TopN}},
			{Key: "issue_type_plot", Table: "issues_data", Render: types,
				Group: aggregate.Spec{GroupBy: finding.ExtraColumn("type")}},
			{Key: "category_plot", Table: "hotspots_data",
				Render: bar("category_counts", "Number of Hotspots per Security Category", "Hotspots"),
				Group:  aggregate.Spec{GroupBy: finding.ExtraColumn("security_category")}},
			{Key: "vulnerability_prob_plot", Table: "hotspots_data", Render: prob,
				Group: aggregate.Spec{GroupBy: finding.ColumnCategory}},
			{Key: "hotspot_file_plot", Table: "hotspots_data", Render: hotspotFiles,
				Group: aggregate.Spec{GroupBy: finding.ColumnLocation, TopN: defaults.TopN}},
		},
	}
}

func isVulnerable(f finding.Finding) bool {
	return f.Category == normalize.CategoryVulnerable
}

func safety() Profile {
	split := chart.Spec{Name: "vulnerable_vs_safe_pie", Title: "Vulnerable vs Safe Packages",
		Kind: chart.Pie, Colors: chart.DependencyColors, TitleCase: true, ShowPercent: true}
	all := chart.Spec{Name: "all_packages_pie", Title: "All Analyzed Packages", Kind: chart.Pie}
	perPackage := chart.Spec{Name: "vulnerabilities_per_package_pie",
		Title: "Number of Vulnerabilities per Affected Package", Kind: chart.Pie, ShowPercent: true}

	return Profile{
		Tool:  "safety",
		Title: "Safety Dependency Report",
		Inputs: []Input{
			{Arg: "findings_json", Table: "data", Normalizer: "safety"},
		},
		Charts: []Chart{
			{Key: "vulnerable_vs_safe_pie", Table: "data", Render: split, Proportions: true,
				Group: aggregate.Spec{GroupBy: finding.ColumnCategory}},
			{Key: "all_packages_pie", Table: "data", Render: all, Proportions: true,
				Group: aggregate.Spec{GroupBy: finding.ColumnLocation}},
			{Key: "vulnerabilities_per_package_pie", Table: "data", Render: perPackage, Proportions: true,
				Group: aggregate.Spec{GroupBy: finding.ColumnLocation, Where: isVulnerable}},
		},
		Values: map[string]ValueFunc{
			"total_packages": func(t map[string]finding.FindingSet) any {
				return t["data"].Len()
			},
			"affected_packages": func(t map[string]finding.FindingSet) any {
				return t["data"].Filter(isVulnerable).Len()
			},
			"safe_packages": func(t map[string]finding.FindingSet) any {
				return t["data"].Len() - t["data"].Filter(isVulnerable).Len()
			},
		},
	}
}

func trufflehog() Profile {
	files := chart.Spec{Name: "file_counts", Title: "Distribution of Secrets Detected Across Files",
		Kind: chart.Donut, PathLabels: true, ShowPercent: true}

	return Profile{
		Tool:  "trufflehog",
		Title: "TruffleHog Secrets Report",
		Inputs: []Input{
			{Arg: "findings_json", Table: "data", Normalizer: "trufflehog"},
		},
		Charts: []Chart{
			{Key: "file_plot", Table: "data", Render: files,
				Group: aggregate.Spec{GroupBy: finding.ColumnLocation, TopN: defaults.TopN}},
		},
	}
}
