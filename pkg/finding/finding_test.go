package finding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Finding {
	return []Finding{
		{Category: "HIGH", Location: "app/db.py", Identifier: Some("CWE-89"), Extra: map[string]any{"line_number": float64(12)}},
		{Category: "LOW", Location: "app/util.py"},
		{Category: "HIGH", Location: "app/db.py", Description: Some("")},
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	var zero Optional
	assert.False(t, zero.Present())
	assert.Equal(t, None(), zero)
	assert.Equal(t, "fallback", zero.Or("fallback"))
	assert.Equal(t, "<absent>", zero.String())

	empty := Some("")
	assert.True(t, empty.Present())
	assert.NotEqual(t, zero, empty, "present empty string must differ from absent")
	assert.Equal(t, "", empty.Or("fallback"))

	v, ok := Some("CVE-2024-1").Get()
	assert.True(t, ok)
	assert.Equal(t, "CVE-2024-1", v)
}

func TestFinding_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Finding{Category: "HIGH", Location: "a.py"}.Validate())

	err := Finding{Category: " ", Location: "a.py"}.Validate()
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	err = Finding{Category: "HIGH"}.Validate()
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "location")
}

func TestFinding_ExtraString(t *testing.T) {
	t.Parallel()

	f := Finding{Extra: map[string]any{"line": float64(42), "ok": true, "name": "x", "nil": nil}}

	got, ok := f.ExtraString("line")
	assert.True(t, ok)
	assert.Equal(t, "42", got)

	got, ok = f.ExtraString("ok")
	assert.True(t, ok)
	assert.Equal(t, "true", got)

	_, ok = f.ExtraString("nil")
	assert.False(t, ok, "nil extra value counts as absent")

	_, ok = f.ExtraString("missing")
	assert.False(t, ok)
}

func TestFinding_Fingerprint(t *testing.T) {
	t.Parallel()

	a := Finding{Category: "HIGH", Location: "a.py", Identifier: Some("CWE-1")}
	b := a
	b.Extra = map[string]any{"line": 3}

	assert.Len(t, a.Fingerprint(KindIssues), 16)
	assert.Equal(t, a.Fingerprint(KindIssues), b.Fingerprint(KindIssues), "extra fields are not hashed")
	assert.NotEqual(t, a.Fingerprint(KindIssues), a.Fingerprint(KindHotspots))

	absent := Finding{Category: "HIGH", Location: "a.py"}
	empty := Finding{Category: "HIGH", Location: "a.py", Identifier: Some("")}
	assert.NotEqual(t, absent.Fingerprint(KindIssues), empty.Fingerprint(KindIssues))
}

func TestColumn_Lookup(t *testing.T) {
	t.Parallel()

	rows := sampleRows()
	tests := []struct {
		col     Column
		row     int
		want    string
		present bool
	}{
		{ColumnCategory, 0, "HIGH", true},
		{ColumnLocation, 1, "app/util.py", true},
		{ColumnIdentifier, 0, "CWE-89", true},
		{ColumnIdentifier, 1, "", false},
		{ColumnDescription, 2, "", true},
		{ExtraColumn("line_number"), 0, "12", true},
		{ExtraColumn("line_number"), 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.col.Name(), func(t *testing.T) {
			got, ok := tt.col.Lookup(rows[tt.row])
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "extra.confidence", ExtraColumn("confidence").Name())
	assert.True(t, ColumnCategory.Mandatory())
	assert.False(t, ColumnIdentifier.Mandatory())
	assert.False(t, ExtraColumn("category").Mandatory())
}

func TestFindingSet_Immutable(t *testing.T) {
	t.Parallel()

	rows := sampleRows()
	set := NewSet(KindIssues, "bandit.json", rows)

	rows[0].Category = "MUTATED"
	rows[0].Extra["line_number"] = float64(99)
	assert.Equal(t, "HIGH", set.At(0).Category)

	got := set.At(0)
	got.Extra["line_number"] = float64(7)
	line, _ := set.At(0).ExtraString("line_number")
	assert.Equal(t, "12", line)

	all := set.All()
	all[1].Location = "changed"
	assert.Equal(t, "app/util.py", set.At(1).Location)
}

func TestFindingSet_Filter(t *testing.T) {
	t.Parallel()

	set := NewSet(KindIssues, "bandit.json", sampleRows())
	high := set.Filter(func(f Finding) bool { return f.Category == "HIGH" })

	assert.Equal(t, 2, high.Len())
	assert.Equal(t, 3, set.Len(), "original set unchanged")
	assert.Equal(t, KindIssues, high.Kind())
	assert.Equal(t, "bandit.json", high.Source())

	none := set.Filter(func(Finding) bool { return false })
	assert.True(t, none.IsEmpty())

	assert.Equal(t, set.Len(), set.Filter(nil).Len())
}

func TestFindingSet_Locations(t *testing.T) {
	t.Parallel()

	set := NewSet(KindIssues, "", sampleRows())
	assert.Equal(t, []string{"app/db.py", "app/util.py"}, set.Locations())
	assert.Empty(t, FindingSet{}.Locations())
}

func TestKinds(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Kind{KindIssues, KindHotspots, KindDependencies, KindSecrets}, Kinds())
}
