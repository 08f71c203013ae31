package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)

		// Rendered email bodies: markdown output plus layout styling.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowURLSchemes("http", "https", "mailto", "tel")
		emailPolicy.RequireNoFollowOnLinks(false)
		emailPolicy.AllowAttrs("class").OnElements("a", "p", "div", "span", "table", "td")
		emailPolicy.AllowStyles(
			"color", "background", "background-color", "font-size", "font-weight",
			"font-family", "line-height", "margin", "padding", "border", "border-radius",
			"text-decoration", "text-align", "display", "max-width", "width",
		).Globally()
	})
}

// StripHTML removes every tag and returns plain text.
// Entities produced by the policy are decoded so "a & b" survives unchanged.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeHTML allows safe formatting tags (p, a, strong, em, lists, code).
// Scripts, event handlers, and javascript: URLs are removed.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeEmailHTML cleans a rendered email body. It keeps inline styles,
// tel: and mailto: links, and the markup goldmark emits.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
