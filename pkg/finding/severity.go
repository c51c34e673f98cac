package finding

import "strings"

// Severity is the canonical severity scale that scanner-specific
// levels are mapped onto. It only drives presentation (chart colours
// and table row classes); the Category column keeps the scanner's own
// spelling.
type Severity string

const (
	// Critical covers sonarqube BLOCKER and CRITICAL.
	Critical Severity = "critical"

	// High covers bandit HIGH and sonarqube MAJOR.
	High Severity = "high"

	// Medium covers bandit MEDIUM and sonarqube MINOR.
	Medium Severity = "medium"

	// Low covers bandit LOW.
	Low Severity = "low"

	// Info covers sonarqube INFO and anything unrecognized.
	Info Severity = "info"
)

// ParseSeverity maps a scanner severity or probability label onto the
// canonical scale. Matching is case-insensitive. Unknown labels map to
// Info.
func ParseSeverity(label string) Severity {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "BLOCKER", "CRITICAL":
		return Critical
	case "HIGH", "MAJOR", "VULNERABLE":
		return High
	case "MEDIUM", "MINOR":
		return Medium
	case "LOW":
		return Low
	default:
		return Info
	}
}

// IsValid reports whether s is a recognized severity level.
func (s Severity) IsValid() bool {
	switch s {
	case Critical, High, Medium, Low, Info:
		return true
	}
	return false
}

// Score returns a numeric score for sorting and comparison.
// Critical=5, High=4, Medium=3, Low=2, Info=1, Unknown=0.
func (s Severity) Score() int {
	switch s {
	case Critical:
		return 5
	case High:
		return 4
	case Medium:
		return 3
	case Low:
		return 2
	case Info:
		return 1
	default:
		return 0
	}
}

// Color returns the hex colour used for this severity in charts and
// report badges.
func (s Severity) Color() string {
	switch s {
	case Critical:
		return "#B71C1C"
	case High:
		return "#F44336"
	case Medium:
		return "#FF9800"
	case Low:
		return "#FFEB3B"
	default:
		return "#2196F3"
	}
}

// String returns the severity as a string.
func (s Severity) String() string {
	return string(s)
}
