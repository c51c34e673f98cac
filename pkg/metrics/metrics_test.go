package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/finding"
)

func TestRecorder_ObserveTable(t *testing.T) {
	t.Parallel()

	r, err := NewRecorder()
	require.NoError(t, err)

	set := finding.NewSet(finding.KindDependencies, "", []finding.Finding{
		{Category: "vulnerable", Location: "django"},
		{Category: "vulnerable", Location: "requests"},
		{Category: "safe", Location: "flask"},
	})
	r.ObserveTable("safety", "data", set)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.rows.WithLabelValues("safety", "data")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.findings.WithLabelValues("safety", "data", "vulnerable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.findings.WithLabelValues("safety", "data", "safe")))
}

func TestRecorder_Charts(t *testing.T) {
	t.Parallel()

	r, err := NewRecorder()
	require.NoError(t, err)

	r.ObserveChart("bandit", true)
	r.ObserveChart("bandit", true)
	r.ObserveChart("bandit", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.charts.WithLabelValues("bandit", ChartRendered)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.charts.WithLabelValues("bandit", ChartSkipped)))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r, err := NewRecorder()
	require.NoError(t, err)
	r.ObserveRun("trufflehog", 1500*time.Millisecond, time.Unix(1700000000, 0))
	r.ObserveTable("trufflehog", "data", finding.NewSet(finding.KindSecrets, "", nil))

	path := filepath.Join(t.TempDir(), "scanreport.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `scanreport_run_duration_seconds{tool="trufflehog"} 1.5`)
	assert.Contains(t, text, `scanreport_last_run_timestamp_seconds{tool="trufflehog"} 1.7e+09`)
	assert.Contains(t, text, `scanreport_table_rows{table="data",tool="trufflehog"} 0`)
	assert.True(t, strings.HasPrefix(text, "# HELP"))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a, err := NewRecorder()
	require.NoError(t, err)
	b, err := NewRecorder()
	require.NoError(t, err)
	assert.NotSame(t, a.Registry(), b.Registry())
}
