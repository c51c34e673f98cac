// Package strutil provides string helpers for chart labels and report
// cells.
package strutil

import "unicode/utf8"

const ellipsis = "..."

// Truncate returns s cut to maxLen runes. If truncated, a "..." suffix
// is appended (included in maxLen). Safe for maxLen <= 0 (returns "").
// Never produces invalid UTF-8.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-len(ellipsis)]) + ellipsis
}

// TruncateLeft keeps the last maxLen runes of s, replacing the cut
// prefix with "...". File paths stay recognizable this way since the
// base name survives.
func TruncateLeft(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= len(ellipsis) {
		return string(r[len(r)-maxLen:])
	}
	keep := maxLen - len(ellipsis)
	return ellipsis + string(r[len(r)-keep:])
}
