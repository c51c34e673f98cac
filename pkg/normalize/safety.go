package normalize

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/scanreport/scanreport/pkg/finding"
)

// Safety category values.
const (
	CategoryVulnerable = "vulnerable"
	CategorySafe       = "safe"

	// NoKnownVulnerabilities is the advisory text safety emits for a
	// package without findings.
	NoKnownVulnerabilities = "No known vulnerabilities"
)

// Safety normalizes the legacy `safety check --json` output: an array
// of [package, affected, installed, advisory, cve, advisory_url]
// tuples.
type Safety struct{}

const safetyTupleLen = 6

var safetyFields = [safetyTupleLen]string{
	"package", "affected_version", "installed_version", "advisory", "cve", "advisory_url",
}

func (Safety) Name() string       { return "safety" }
func (Safety) Kind() finding.Kind { return finding.KindDependencies }

func (s Safety) Normalize(raw any, source string) (finding.FindingSet, error) {
	recs, ok := raw.([]any)
	if !ok {
		return finding.FindingSet{}, &SchemaError{
			Normalizer: s.Name(),
			Index:      -1,
			Reason:     fmt.Sprintf("expected an array of %d-element tuples, got %s", safetyTupleLen, typeName(raw)),
		}
	}

	rows := make([]finding.Finding, 0, len(recs))
	for i, rec := range recs {
		f, err := s.tuple(i, rec)
		if err != nil {
			return finding.FindingSet{}, err
		}
		rows = append(rows, f)
	}
	return finding.NewSet(s.Kind(), source, rows), nil
}

func (s Safety) tuple(i int, rec any) (finding.Finding, error) {
	tuple, ok := rec.([]any)
	if !ok || len(tuple) != safetyTupleLen {
		return finding.Finding{}, &SchemaError{
			Normalizer: s.Name(),
			Index:      i,
			Reason:     fmt.Sprintf("expected a %d-element tuple, got %s", safetyTupleLen, describeTuple(rec)),
		}
	}

	pkg, ok := tupleString(tuple[0])
	if !ok || strings.TrimSpace(pkg) == "" {
		return finding.Finding{}, &SchemaError{Normalizer: s.Name(), Index: i, Field: safetyFields[0], Reason: "missing package name"}
	}
	advisory, ok := tupleString(tuple[3])
	if !ok {
		return finding.Finding{}, &SchemaError{Normalizer: s.Name(), Index: i, Field: safetyFields[3], Reason: "missing advisory"}
	}

	f := finding.Finding{
		Category:    CategoryVulnerable,
		Location:    strings.TrimSpace(pkg),
		Description: finding.Some(advisory),
		Extra:       map[string]any{},
	}
	if advisory == NoKnownVulnerabilities {
		f.Category = CategorySafe
	}
	if cve, ok := tupleString(tuple[4]); ok {
		f.Identifier = finding.Some(cve)
	}
	for _, pos := range []int{1, 2, 5} {
		if v, ok := tupleString(tuple[pos]); ok {
			f.Extra[safetyFields[pos]] = v
		}
	}
	return f, nil
}

func tupleString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if _, ok := scalar(v); !ok {
		return "", false
	}
	return cast.ToString(v), true
}

func describeTuple(v any) string {
	if arr, ok := v.([]any); ok {
		return fmt.Sprintf("%d-element array", len(arr))
	}
	return typeName(v)
}
