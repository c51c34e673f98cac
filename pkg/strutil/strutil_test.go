package strutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"long message truncated", "Possible SQL injection " + strings.Repeat("a", 100), 30, "Possible SQL injection aaaa..."},
		{"short unchanged", "B608", 30, "B608"},
		{"exact boundary unchanged", "exactly10!", 10, "exactly10!"},
		{"one over boundary", "exactly11!x", 10, "exactly..."},
		{"tiny limit", "abcdef", 2, "ab"},
		{"zero limit", "abc", 0, ""},
		{"unicode", "héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"path keeps base name", "src/service/internal/handlers/db.py", 16, "...andlers/db.py"},
		{"short unchanged", "app/db.py", 16, "app/db.py"},
		{"tiny limit", "abcdef", 3, "def"},
		{"negative limit", "abc", -1, ""},
		{"unicode", "dossier/été.py", 9, "...été.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateLeft(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n > tt.maxLen && tt.maxLen > 0 {
				t.Errorf("result has %d runes, limit %d", n, tt.maxLen)
			}
		})
	}
}
