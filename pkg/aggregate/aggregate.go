// Package aggregate computes count and proportion breakdowns over a
// finding.FindingSet.
//
// Buckets are ordered by descending count. Ties keep the order in which
// keys first appear in the set, so results are deterministic for a
// given input.
package aggregate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/scanreport/scanreport/pkg/finding"
)

// OthersKey is the label of the bucket that folds the tail of a
// truncated aggregate.
const OthersKey = "Others"

// ErrMissingColumn is returned when no row in a non-empty set carries
// the grouping column. The affected chart is skipped.
var ErrMissingColumn = errors.New("aggregate: column absent from every row")

// Spec describes one breakdown.
type Spec struct {
	// GroupBy is the grouping column.
	GroupBy finding.Column

	// TopN keeps the N largest buckets and folds the rest into
	// OthersKey. Zero or negative keeps every bucket.
	TopN int

	// Where filters rows before grouping. Nil keeps every row.
	Where func(finding.Finding) bool
}

func (s Spec) String() string {
	if s.TopN > 0 {
		return fmt.Sprintf("%s top %d", s.GroupBy.Name(), s.TopN)
	}
	return s.GroupBy.Name()
}

// Bucket is one (key, count) pair.
type Bucket struct {
	Key   string
	Count int

	// Synthetic marks the folded OthersKey bucket.
	Synthetic bool
}

// Aggregate is the ordered result of Count.
type Aggregate struct {
	Spec    Spec
	Buckets []Bucket

	// Rows is the number of rows after Where was applied, including
	// rows without a value in the grouping column.
	Rows int
}

// Total returns the sum of all bucket counts.
func (a Aggregate) Total() int {
	n := 0
	for _, b := range a.Buckets {
		n += b.Count
	}
	return n
}

// Keys returns the bucket keys in order.
func (a Aggregate) Keys() []string {
	keys := make([]string, len(a.Buckets))
	for i, b := range a.Buckets {
		keys[i] = b.Key
	}
	return keys
}

// Count groups the rows of set by spec.GroupBy.
//
// Rows without a value in an optional column are not counted. If the
// filtered set is non-empty but no row has the column, ErrMissingColumn
// is returned. An empty set yields an empty Aggregate.
func Count(set finding.FindingSet, spec Spec) (Aggregate, error) {
	rows := set.Filter(spec.Where)
	agg := Aggregate{Spec: spec, Rows: rows.Len()}

	counts := make(map[string]int)
	var order []string
	for _, f := range rows.All() {
		key, ok := spec.GroupBy.Lookup(f)
		if !ok {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	if rows.Len() > 0 && len(order) == 0 && !spec.GroupBy.Mandatory() {
		return agg, fmt.Errorf("%w: %s", ErrMissingColumn, spec.GroupBy.Name())
	}

	buckets := make([]Bucket, len(order))
	for i, key := range order {
		buckets[i] = Bucket{Key: key, Count: counts[key]}
	}
	slices.SortStableFunc(buckets, func(a, b Bucket) int {
		return b.Count - a.Count
	})
	agg.Buckets = truncate(buckets, spec.TopN)
	return agg, nil
}

func truncate(buckets []Bucket, topN int) []Bucket {
	if topN <= 0 || len(buckets) <= topN {
		return buckets
	}
	tail := 0
	for _, b := range buckets[topN:] {
		tail += b.Count
	}
	out := slices.Clone(buckets[:topN])
	return append(out, Bucket{Key: OthersKey, Count: tail, Synthetic: true})
}

// Share is one bucket expressed as a fraction of the filtered set.
type Share struct {
	Bucket
	Ratio float64
}

// Proportions is Count with each bucket divided by the number of
// filtered rows. An empty filtered set returns finding.ErrEmptyInput.
func Proportions(set finding.FindingSet, spec Spec) ([]Share, error) {
	agg, err := Count(set, spec)
	if err != nil {
		return nil, err
	}
	if agg.Rows == 0 {
		return nil, fmt.Errorf("%w: no rows for %s", finding.ErrEmptyInput, spec)
	}
	shares := make([]Share, len(agg.Buckets))
	for i, b := range agg.Buckets {
		shares[i] = Share{Bucket: b, Ratio: float64(b.Count) / float64(agg.Rows)}
	}
	return shares, nil
}
