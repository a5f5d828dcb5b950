// Package logtext normalizes raw process output before it enters a log
// buffer. Line endings collapse to \n, invalid UTF-8 is repaired, and ANSI
// escape sequences can be stripped for the plain-text on-disk form.
// All functions are pure and never fail on malformed input.
package logtext

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// Normalize converts Windows (\r\n) and bare carriage-return (\r) line
// endings to \n.
func Normalize(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// StripANSI removes ANSI escape sequences, leaving printable content.
// Malformed or truncated sequences are handled by the underlying parser
// without error.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	return ansi.Strip(s)
}

// Sanitize replaces invalid UTF-8 byte sequences with the Unicode
// replacement rune. Valid input is returned unchanged without allocating.
func Sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
