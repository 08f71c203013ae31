package mailer

import (
	"fmt"
	"strings"
	texttemplate "text/template"
)

// textFuncs render helpers for the plain-text body.
var textFuncs = texttemplate.FuncMap{
	"esc": func(v any) string { return toString(v) },
	"b":   func(s string) string { return "*" + s + "*" },
	"link": func(label, _ string) string {
		return label
	},
	"button": func(label, url string) string {
		return label + ": " + url
	},
}

// markdownFuncs render the same helpers as safe markdown.
var markdownFuncs = texttemplate.FuncMap{
	"esc": func(v any) string { return EscapeMarkdown(toString(v)) },
	"b":   func(s string) string { return "**" + s + "**" },
	"link": func(label, url string) string {
		return "[" + EscapeMarkdown(label) + "](" + escapeDestination(url) + ")"
	},
	"button": func(label, url string) string {
		return buttonPrefix + strings.NewReplacer("]", "", "\n", " ").Replace(label) + "](" + escapeDestination(url) + ")"
	},
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// EscapeMarkdown backslash-escapes ASCII punctuation so s renders as literal
// text. Leading indentation is removed from every line to keep user input from
// opening a code block.
func EscapeMarkdown(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, r := range strings.TrimLeft(line, " \t") {
			if r < 128 && strings.ContainsRune(markdownPunct, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

var destinationEscaper = strings.NewReplacer(
	" ", "%20",
	"<", "%3C",
	">", "%3E",
	"(", "%28",
	")", "%29",
	"\n", "",
	"\r", "",
)

func escapeDestination(url string) string {
	return destinationEscaper.Replace(strings.TrimSpace(url))
}
