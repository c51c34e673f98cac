// Package finding provides the normalized row types shared by every
// scanner report.
//
// Each scanner's JSON output is mapped onto the same fixed column set
// (category, location, identifier, description, extra) so that the
// aggregation, charting and rendering stages never need to know which
// tool produced the data.
//
// Usage:
//
//	set := finding.NewSet(finding.KindIssues, "bandit.json", []finding.Finding{
//	    {Category: "HIGH", Location: "app/db.py", Identifier: finding.Some("CWE-89")},
//	})
//	high := set.Filter(func(f finding.Finding) bool { return f.Category == "HIGH" })
package finding
