package ui

import (
	"os"
	"runtime"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

var (
	unicodeOnce sync.Once
	unicodeOK   bool
)

// UnicodeTerminal reports whether stderr can render Unicode glyphs.
// It is false when output is piped, TERM is "dumb", or on a legacy
// Windows console (Windows Terminal sets WT_SESSION).
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" || !term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		unicodeOK = runtime.GOOS != "windows" || os.Getenv("WT_SESSION") != ""
	})
	return unicodeOK
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}

// SanitizeString drops symbols the terminal cannot render. Latin text
// is kept; on Unicode terminals s is returned unchanged.
func SanitizeString(s string) string {
	if UnicodeTerminal() {
		return s
	}
	return sanitize(s)
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r <= 0xFF || unicode.Is(unicode.Latin, r) {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}
