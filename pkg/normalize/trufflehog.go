package normalize

import (
	"fmt"

	"github.com/scanreport/scanreport/pkg/finding"
)

// Trufflehog normalizes trufflehog v2 `--json` output collected into
// a JSON array of result objects.
type Trufflehog struct{}

var trufflehogRules = []fieldRule{
	{path: []string{"reason"}, to: colCategory, required: true},
	{path: []string{"path"}, to: colLocation, required: true},
	{path: []string{"commitHash"}, to: colIdentifier},
	{path: []string{"stringsFound"}, to: colDescription, convert: joinStrings},
	{path: []string{"branch"}, to: colExtra, extra: "branch"},
	{path: []string{"commit"}, to: colExtra, extra: "commit"},
	{path: []string{"date"}, to: colExtra, extra: "date"},
}

func (Trufflehog) Name() string       { return "trufflehog" }
func (Trufflehog) Kind() finding.Kind { return finding.KindSecrets }

func (t Trufflehog) Normalize(raw any, source string) (finding.FindingSet, error) {
	recs, ok := raw.([]any)
	if !ok {
		return finding.FindingSet{}, &SchemaError{
			Normalizer: t.Name(),
			Index:      -1,
			Reason:     fmt.Sprintf("expected an array of results, got %s", typeName(raw)),
		}
	}
	return mapObjects(t, source, recs, trufflehogRules)
}
