package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/finding"
)

func renderBandit(t *testing.T, text string) ([]byte, error) {
	t.Helper()
	b := NewContextBuilder(testMeta())
	b.AddTable("data", banditSet())
	b.AddChart(ChartEntry{Name: "severity_plot", Title: "Severity", URL: "data:image/png;base64,iVBORw0KGgo="})
	return NewRenderer().RenderHTML("bandit", text, b.Document().Context())
}

func TestRenderHTML_DataURLKept(t *testing.T) {
	t.Parallel()

	out, err := renderBandit(t, `<img src="{{.severity_plot}}">{{range .charts}}<img alt="{{.Title}}" src="{{.URL}}">{{end}}`)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), `src="data:image/png;base64,iVBORw0KGgo="`))
	assert.NotContains(t, string(out), "ZgotmplZ")
}

func TestRenderHTML_Table(t *testing.T) {
	t.Parallel()

	tmpl := `<h1>{{.title}}</h1><p>{{.data_count}} findings</p>
{{range .data}}<tr id="f-{{.ID}}" class="{{severityClass .Category}}"><td>{{.Category | titleCase}}</td><td>{{.Location}}</td><td>{{optional .Identifier}}</td><td>{{index .Extra "confidence"}}</td></tr>
{{end}}{{percent 1 4}}`
	out, err := renderBandit(t, tmpl)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1>Bandit Report</h1>")
	assert.Contains(t, html, "2 findings")
	assert.Contains(t, html, `class="sev-high"`)
	assert.Contains(t, html, "<td>High</td>")
	assert.Contains(t, html, "<td>CWE-89</td>")
	assert.Contains(t, html, "<td>-</td>", "absent identifier renders the fallback")
	assert.Contains(t, html, "25.0%")
}

func TestRenderHTML_SprigAvailable(t *testing.T) {
	t.Parallel()

	out, err := renderBandit(t, `{{.tool | upper}} {{default "n/a" ""}}`)
	require.NoError(t, err)
	assert.Equal(t, "BANDIT n/a", string(out))
}

func TestRenderHTML_EscapesFindingText(t *testing.T) {
	t.Parallel()

	set := finding.NewSet(finding.KindSecrets, "", []finding.Finding{
		{Category: "High Entropy", Location: "<script>alert(1)</script>"},
	})
	b := NewContextBuilder(testMeta()).AddTable("data", set)
	out, err := NewRenderer().RenderHTML("t", `{{range .data}}{{.Location}}{{end}}`, b.Document().Context())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestRenderHTML_MissingVariable(t *testing.T) {
	t.Parallel()

	out, err := renderBandit(t, `<img src="{{.severity_plot}}"><img src="{{.confidence_plot}}">`)
	require.Error(t, err)
	assert.Nil(t, out, "no partial output")
	assert.True(t, errors.Is(err, finding.ErrMissingTemplateVariable))

	var mv *MissingVariableError
	require.ErrorAs(t, err, &mv)
	assert.Equal(t, "confidence_plot", mv.Name)
	assert.Contains(t, err.Error(), `"confidence_plot"`)
}

func TestRenderHTML_MissingField(t *testing.T) {
	t.Parallel()

	_, err := renderBandit(t, `{{range .data}}{{.Severityy}}{{end}}`)
	var mv *MissingVariableError
	require.ErrorAs(t, err, &mv)
	assert.Equal(t, "Severityy", mv.Name)
}

func TestRenderHTML_ParseError(t *testing.T) {
	t.Parallel()

	_, err := renderBandit(t, `{{range .data}}`)
	assert.ErrorIs(t, err, ErrTemplate)
	assert.False(t, errors.Is(err, finding.ErrMissingTemplateVariable))
}
