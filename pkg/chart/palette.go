package chart

import "github.com/scanreport/scanreport/pkg/finding"

// DefaultPalette is a pastel palette used for labels without a fixed colour.
var DefaultPalette = []string{
	"#A1C9F4", "#FFB482", "#8DE5A1", "#FF9F9B", "#D0BBFF",
	"#DEBB9B", "#FAB0E4", "#CFCFCF", "#FFFEA3", "#B9F2F0",
	"#E0E0E0",
}

// SeverityColors colours bandit and sonarqube severity labels.
var SeverityColors = map[string]string{
	"low":      finding.Low.Color(),
	"medium":   finding.Medium.Color(),
	"high":     finding.High.Color(),
	"critical": finding.Critical.Color(),
	"blocker":  finding.Critical.Color(),
	"major":    finding.High.Color(),
	"minor":    finding.Medium.Color(),
	"info":     finding.Info.Color(),
}

// DependencyColors colours the vulnerable/safe split.
var DependencyColors = map[string]string{
	"vulnerable": "#F44336",
	"safe":       "#4CAF50",
}

// PaletteFrom returns hex colours, falling back to DefaultPalette when
// colors is empty.
func PaletteFrom(colors []string) []string {
	if len(colors) == 0 {
		return DefaultPalette
	}
	return colors
}
