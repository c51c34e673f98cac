package normalize

import (
	"strings"

	"github.com/scanreport/scanreport/pkg/finding"
)

// Bandit normalizes `bandit -f json` output: {"results": [...]}.
type Bandit struct{}

var banditRules = []fieldRule{
	{path: []string{"issue_severity"}, to: colCategory, required: true, format: strings.ToUpper},
	{path: []string{"filename"}, to: colLocation, required: true},
	{path: []string{"issue_cwe", "id"}, to: colIdentifier, format: cweID},
	{path: []string{"issue_text"}, to: colDescription},
	{path: []string{"issue_confidence"}, to: colExtra, extra: "confidence"},
	{path: []string{"test_id"}, to: colExtra, extra: "test_id"},
	{path: []string{"test_name"}, to: colExtra, extra: "test_name"},
	{path: []string{"line_number"}, to: colExtra, extra: "line_number"},
	{path: []string{"more_info"}, to: colExtra, extra: "more_info"},
}

func (Bandit) Name() string       { return "bandit" }
func (Bandit) Kind() finding.Kind { return finding.KindIssues }

func (b Bandit) Normalize(raw any, source string) (finding.FindingSet, error) {
	recs, err := records(b.Name(), raw, "results")
	if err != nil {
		return finding.FindingSet{}, err
	}
	return mapObjects(b, source, recs, banditRules)
}

// cweID renders a bare CWE number as "CWE-<n>".
func cweID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(strings.ToUpper(s), "CWE-") {
		return s
	}
	return "CWE-" + s
}
