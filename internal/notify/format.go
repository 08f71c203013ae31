package notify

import (
	"strings"
	"time"
	"unicode"
)

const (
	displayDateLayout = "Monday, January 2, 2006"
	submittedLayout   = "1/2/2006, 3:04:05 PM"
	notSpecified      = "Not specified"
	notProvided       = "Not provided"
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// FormatDate renders a submitted date as "Monday, January 2, 2006".
// Values that do not parse are returned unchanged.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return raw
}

// FormatSubmitted renders t in loc the way the clinic staff read it.
func FormatSubmitted(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(submittedLayout)
}

// telURL keeps digits and a leading plus. It returns "" when no digits remain.
func telURL(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	digits := strings.TrimPrefix(b.String(), "+")
	if digits == "" {
		return ""
	}
	return "tel:" + b.String()
}

func mailtoURL(email string) string {
	if email == "" {
		return ""
	}
	return "mailto:" + email
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// CleanAddress strips one pair of surrounding quotes, which often sneak into
// FROM_EMAIL through .env files.
func CleanAddress(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if s != "" && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
