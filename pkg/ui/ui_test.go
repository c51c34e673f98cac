package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// Not parallel: the tests swap the package-level writer.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)
	fn()
	return buf.String()
}

func TestPrintFunctions(t *testing.T) {
	got := capture(t, func() {
		PrintConfigLine("Tool", "bandit")
		PrintConfigLine("CSV", "")
		PrintWarning("chart cwe_plot skipped")
		PrintError("boom")
		PrintStat("Findings", "12")
		PrintPath("Report", "out/bandit/bandit-report.html")
	})

	assert.Contains(t, got, ":: Tool")
	assert.Contains(t, got, "bandit")
	assert.NotContains(t, got, "CSV", "empty values are not printed")
	assert.Contains(t, got, "[!] chart cwe_plot skipped")
	assert.Contains(t, got, "[X] boom")
	assert.Contains(t, got, "Findings: 12")
	assert.Contains(t, got, "Report: out/bandit/bandit-report.html")
}

func TestSilentMode(t *testing.T) {
	SetSilent(true)
	defer SetSilent(false)

	got := capture(t, func() {
		PrintBanner()
		PrintSuccess("done")
		PrintStat("Findings", "3")
		PrintError("still shown")
	})
	assert.NotContains(t, got, "done")
	assert.NotContains(t, got, "Findings")
	assert.Contains(t, got, "still shown")
}

func TestPrintBrackets(t *testing.T) {
	got := capture(t, func() {
		PrintBrackets("data", SeverityBracket("HIGH", 2), CategoryBracket("vulnerable", 1))
	})
	assert.Contains(t, got, "data:")
	assert.Contains(t, got, "high 2")
	assert.Contains(t, got, "vulnerable 1")
}

func TestSeverityStyle_CaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SeverityStyle("HIGH").GetBackground(), SeverityStyle("high").GetBackground())
	assert.Equal(t, SeverityStyle("MAJOR").GetBackground(), SeverityStyle("High").GetBackground())
	assert.Equal(t, SeverityStyle("BLOCKER").GetBackground(), SeverityStyle("critical").GetBackground())
	assert.Equal(t, lipgloss.TerminalColor(lipgloss.NoColor{}), SeverityStyle("unknown").GetBackground())
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain ascii", "plain ascii"},
		{"café", "café"},
		{"✔ done", " done"},
		{"Łódź", "Łódź"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in), tt.in)
	}
}
