package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/scanreport/scanreport/pkg/defaults"
)

// Global UI state
var (
	silentMode bool
	out        io.Writer = os.Stderr
	uiMu       sync.RWMutex
)

// SetSilent enables or disables silent mode (suppresses everything but errors)
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects console output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	uiMu.Lock()
	defer uiMu.Unlock()
	prev := out
	out = w
	return prev
}

func writer() io.Writer {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return out
}

const bannerArt = `
                                                         __
   ______________ _____        ________  ____  ____  _____/ /_
  / ___/ ___/ __ '/ __ \______/ ___/ _ \/ __ \/ __ \/ ___/ __/
 (__  ) /__/ /_/ / / / /_____/ /  /  __/ /_/ / /_/ / /  / /_
/____/\___/\__,_/_/ /_/     /_/   \___/ .___/\____/_/   \__/
                                     /_/
`

const separator = "________________________________________________"

// PrintBanner prints the application banner with version info
func PrintBanner() {
	if IsSilent() {
		return
	}
	w := writer()
	for _, line := range strings.Split(bannerArt, "\n") {
		if line != "" {
			fmt.Fprintln(w, BannerStyle.Render(line))
		}
	}
	fmt.Fprintf(w, "%40s\n\n", VersionStyle.Render("v"+defaults.Version))
}

// PrintConfigLine prints a single config line
// Format:  :: Key              : Value
func PrintConfigLine(key, value string) {
	if IsSilent() || value == "" {
		return
	}
	fmt.Fprintf(writer(), " :: %s : %s\n", ConfigLabelStyle.Render(key), ConfigValueStyle.Render(value))
}

// PrintDivider prints a stylized divider
func PrintDivider() {
	if IsSilent() {
		return
	}
	fmt.Fprintf(writer(), "%s\n\n", DividerStyle.Render(separator))
}

// PrintSection prints a section header
func PrintSection(title string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(writer(), SectionStyle.Render("> "+title))
}

// PrintHelp prints contextual help
func PrintHelp(text string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(writer(), HelpStyle.Render("  [i] "+text))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(writer(), SuccessStyle.Render("  "+Icon("✔", "[+]")+" "+SanitizeString(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(writer(), WarningStyle.Render("  "+Icon("⚠", "[!]")+" "+SanitizeString(message)))
}

// PrintError prints an error message. Errors are shown in silent mode.
func PrintError(message string) {
	fmt.Fprintln(writer(), ErrorStyle.Render("  "+Icon("✘", "[X]")+" "+SanitizeString(message)))
}

// PrintStat prints a label/value pair in the run summary.
func PrintStat(label, value string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(writer(), "    %s %s\n", StatLabelStyle.Render(label+":"), StatValueStyle.Render(value))
}

// PrintPath prints a written artifact.
func PrintPath(label, path string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(writer(), "    %s %s\n", StatLabelStyle.Render(label+":"), PathStyle.Render(path))
}

// BracketPart is one piece of bracketed output, e.g. [high 3].
type BracketPart struct {
	Text  string
	Style lipgloss.Style
}

// SeverityBracket styles a category/count pair by severity.
func SeverityBracket(category string, count int) BracketPart {
	return BracketPart{
		Text:  fmt.Sprintf("%s %d", strings.ToLower(category), count),
		Style: SeverityStyle(category),
	}
}

// CategoryBracket styles a non-severity category/count pair.
func CategoryBracket(category string, count int) BracketPart {
	return BracketPart{Text: fmt.Sprintf("%s %d", SanitizeString(category), count), Style: CategoryStyle}
}

// PrintBrackets prints label followed by bracketed parts.
// Example:     data: [high 2] [low 1]
func PrintBrackets(label string, parts ...BracketPart) {
	if IsSilent() {
		return
	}
	var b strings.Builder
	b.WriteString("    ")
	b.WriteString(StatLabelStyle.Render(label + ":"))
	for _, p := range parts {
		b.WriteString(" ")
		b.WriteString(BracketStyle.Render("["))
		b.WriteString(p.Style.Render(p.Text))
		b.WriteString(BracketStyle.Render("]"))
	}
	fmt.Fprintln(writer(), b.String())
}
