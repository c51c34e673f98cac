package normalize

import (
	"strings"

	"github.com/scanreport/scanreport/pkg/finding"
)

// SonarIssues normalizes the sonarqube issues search export:
// {"issues": [...]}.
type SonarIssues struct{}

var sonarIssueRules = []fieldRule{
	{path: []string{"severity"}, to: colCategory, required: true, format: strings.ToUpper},
	{path: []string{"component"}, to: colLocation, required: true},
	{path: []string{"rule"}, to: colIdentifier},
	{path: []string{"message"}, to: colDescription},
	{path: []string{"type"}, to: colExtra, extra: "type"},
	{path: []string{"line"}, to: colExtra, extra: "line"},
	{path: []string{"status"}, to: colExtra, extra: "status"},
	{path: []string{"key"}, to: colExtra, extra: "key"},
	{path: []string{"project"}, to: colExtra, extra: "project"},
	{path: []string{"effort"}, to: colExtra, extra: "effort"},
}

func (SonarIssues) Name() string       { return "sonarqube-issues" }
func (SonarIssues) Kind() finding.Kind { return finding.KindIssues }

func (s SonarIssues) Normalize(raw any, source string) (finding.FindingSet, error) {
	recs, err := records(s.Name(), raw, "issues")
	if err != nil {
		return finding.FindingSet{}, err
	}
	return mapObjects(s, source, recs, sonarIssueRules)
}

// SonarHotspots normalizes the sonarqube hotspots search export. The
// records are read from "hotspots", or from "issues" when the export
// was produced with the issues-shaped envelope.
type SonarHotspots struct{}

var sonarHotspotRules = []fieldRule{
	{path: []string{"vulnerabilityProbability"}, to: colCategory, required: true, format: strings.ToUpper},
	{path: []string{"component"}, to: colLocation, required: true},
	{path: []string{"ruleKey"}, to: colIdentifier},
	{path: []string{"message"}, to: colDescription},
	{path: []string{"securityCategory"}, to: colExtra, extra: "security_category"},
	{path: []string{"status"}, to: colExtra, extra: "status"},
	{path: []string{"line"}, to: colExtra, extra: "line"},
	{path: []string{"key"}, to: colExtra, extra: "key"},
}

func (SonarHotspots) Name() string       { return "sonarqube-hotspots" }
func (SonarHotspots) Kind() finding.Kind { return finding.KindHotspots }

func (s SonarHotspots) Normalize(raw any, source string) (finding.FindingSet, error) {
	recs, err := records(s.Name(), raw, "hotspots", "issues")
	if err != nil {
		return finding.FindingSet{}, err
	}
	return mapObjects(s, source, recs, sonarHotspotRules)
}
