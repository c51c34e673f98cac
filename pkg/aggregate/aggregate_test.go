package aggregate

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/finding"
)

// setOf builds a set whose rows are category labels repeated per counts.
func setOf(labels ...string) finding.FindingSet {
	rows := make([]finding.Finding, len(labels))
	for i, l := range labels {
		rows[i] = finding.Finding{Category: l, Location: "loc-" + l}
	}
	return finding.NewSet(finding.KindIssues, "test", rows)
}

func repeat(label string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = label
	}
	return out
}

func TestCount_TopNFoldsOthers(t *testing.T) {
	t.Parallel()

	var labels []string
	labels = append(labels, repeat("A", 5)...)
	labels = append(labels, repeat("B", 3)...)
	labels = append(labels, repeat("C", 2)...)
	labels = append(labels, repeat("D", 1)...)

	agg, err := Count(setOf(labels...), Spec{GroupBy: finding.ColumnCategory, TopN: 2})
	require.NoError(t, err)

	assert.Equal(t, []Bucket{
		{Key: "A", Count: 5},
		{Key: "B", Count: 3},
		{Key: OthersKey, Count: 3, Synthetic: true},
	}, agg.Buckets)
	assert.Equal(t, 11, agg.Total())
	assert.Equal(t, 11, agg.Rows)
}

func TestCount_NoOthersWhenTailEmpty(t *testing.T) {
	t.Parallel()

	agg, err := Count(setOf("A", "A", "B"), Spec{GroupBy: finding.ColumnCategory, TopN: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, agg.Keys())

	agg, err = Count(setOf("A", "B"), Spec{GroupBy: finding.ColumnCategory, TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, agg.Keys())
}

func TestCount_TiesKeepFirstSeenOrder(t *testing.T) {
	t.Parallel()

	agg, err := Count(setOf("C", "A", "B", "A", "C", "B", "D"), Spec{GroupBy: finding.ColumnCategory})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D"}, agg.Keys())
}

func TestCount_Where(t *testing.T) {
	t.Parallel()

	set := setOf("vulnerable", "safe", "vulnerable")
	agg, err := Count(set, Spec{
		GroupBy: finding.ColumnLocation,
		Where:   func(f finding.Finding) bool { return f.Category == "vulnerable" },
	})
	require.NoError(t, err)
	assert.Equal(t, []Bucket{{Key: "loc-vulnerable", Count: 2}}, agg.Buckets)
	assert.Equal(t, 2, agg.Rows)
}

func TestCount_OptionalColumn(t *testing.T) {
	t.Parallel()

	set := finding.NewSet(finding.KindIssues, "", []finding.Finding{
		{Category: "HIGH", Location: "a", Identifier: finding.Some("CWE-89")},
		{Category: "LOW", Location: "b"},
		{Category: "LOW", Location: "c", Identifier: finding.Some("CWE-89")},
	})

	agg, err := Count(set, Spec{GroupBy: finding.ColumnIdentifier})
	require.NoError(t, err)
	assert.Equal(t, []Bucket{{Key: "CWE-89", Count: 2}}, agg.Buckets)
	assert.Equal(t, 3, agg.Rows)

	_, err = Count(set, Spec{GroupBy: finding.ExtraColumn("confidence")})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestCount_Empty(t *testing.T) {
	t.Parallel()

	agg, err := Count(setOf(), Spec{GroupBy: finding.ExtraColumn("confidence")})
	require.NoError(t, err, "an empty set is not a missing column")
	assert.Empty(t, agg.Buckets)
	assert.Zero(t, agg.Total())
}

// Buckets are sorted by descending count, deterministic, and every
// location key exists in the source set.
func TestCount_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	files := []string{"a.py", "b.py", "c.py", "d.py", "e.py", "f.py"}

	for iter := 0; iter < 50; iter++ {
		n := rng.IntN(40)
		rows := make([]finding.Finding, n)
		for i := range rows {
			rows[i] = finding.Finding{Category: "HIGH", Location: files[rng.IntN(len(files))]}
		}
		set := finding.NewSet(finding.KindIssues, "", rows)
		spec := Spec{GroupBy: finding.ColumnLocation, TopN: rng.IntN(4)}

		first, err := Count(set, spec)
		require.NoError(t, err)
		second, err := Count(set, spec)
		require.NoError(t, err)
		assert.Equal(t, first.Buckets, second.Buckets, "iteration %d not deterministic", iter)

		known := set.Locations()
		for i, b := range first.Buckets {
			if b.Synthetic {
				assert.Equal(t, len(first.Buckets)-1, i, "Others must be last")
				continue
			}
			if i > 0 && !first.Buckets[i-1].Synthetic {
				assert.GreaterOrEqual(t, first.Buckets[i-1].Count, b.Count, "iteration %d not sorted", iter)
			}
			assert.True(t, slices.Contains(known, b.Key), "unknown location %q", b.Key)
		}
		assert.Equal(t, n, first.Total())
	}
}

func TestProportions(t *testing.T) {
	t.Parallel()

	shares, err := Proportions(setOf("vulnerable", "safe", "vulnerable"), Spec{GroupBy: finding.ColumnCategory})
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "vulnerable", shares[0].Key)
	assert.Equal(t, 2, shares[0].Count)
	assert.InDelta(t, 2.0/3.0, shares[0].Ratio, 1e-9)
	assert.InDelta(t, 1.0/3.0, shares[1].Ratio, 1e-9)
}

func TestProportions_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Proportions(setOf(), Spec{GroupBy: finding.ColumnCategory})
	assert.ErrorIs(t, err, finding.ErrEmptyInput)

	_, err = Proportions(setOf("safe"), Spec{
		GroupBy: finding.ColumnLocation,
		Where:   func(f finding.Finding) bool { return f.Category == "vulnerable" },
	})
	assert.ErrorIs(t, err, finding.ErrEmptyInput, "filtered to nothing")
}

func TestSpec_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "location top 10", Spec{GroupBy: finding.ColumnLocation, TopN: 10}.String())
	assert.Equal(t, "extra.type", Spec{GroupBy: finding.ExtraColumn("type")}.String())
}
