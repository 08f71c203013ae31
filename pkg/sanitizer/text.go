package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeUnicode converts s to NFC so visually identical input compares equal
// and length limits count what the user sees.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// SingleLine collapses every run of whitespace or control characters,
// including line breaks and U+2028/U+2029, into a single space and trims the
// ends. Values that end up in mail headers must pass through it.
func SingleLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// StripControl removes control characters except newlines and tabs.
// Carriage returns are dropped so multi-line text uses plain \n.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
