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

// UnicodeTerminal reports whether stderr can render Unicode glyphs
// (braille spinners, check marks). Returns false when output is piped,
// redirected, TERM is "dumb", or on Windows without Windows Terminal.
//
// Legacy Windows consoles lack the glyphs; Windows Terminal sets
// WT_SESSION.
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !StderrIsTerminal() {
			return
		}
		if runtime.GOOS == "windows" {
			// Windows Terminal sets WT_SESSION; legacy conhost does not.
			unicodeOK = os.Getenv("WT_SESSION") != ""
			return
		}
		unicodeOK = true
	})
	return unicodeOK
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
// Use at every call site that renders emoji or special characters to
// stderr/stdout: ui.Icon("✔", "+")
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}

// SanitizeString drops the runes a legacy console cannot draw. On
// Unicode-capable terminals s is returned unchanged. The Print* functions
// apply it to every message.
func SanitizeString(s string) string {
	if UnicodeTerminal() {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == utf8.RuneError || isVariationSelector(r) {
			continue
		}
		if r < 0x80 || isSafeForLegacy(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isVariationSelector(r rune) bool {
	return r >= 0xFE00 && r <= 0xFE0F
}

// isSafeForLegacy reports whether r is Latin-1 or another Latin letter,
// which the default console fonts carry.
func isSafeForLegacy(r rune) bool {
	return r <= 0xFF || unicode.Is(unicode.Latin, r)
}
