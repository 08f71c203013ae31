package validator

import (
	"regexp"
	"time"
)

// emailPattern is deliberately loose: something@something.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailString fails when value does not look like an email address.
func EmailString(field, value string) Rule {
	return Rule{
		Check: func() bool { return emailPattern.MatchString(value) },
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// DateString fails when value does not parse with any of the layouts.
func DateString(field, value string, layouts ...string) Rule {
	if len(layouts) == 0 {
		layouts = []string{time.DateOnly}
	}
	return Rule{
		Check: func() bool {
			for _, l := range layouts {
				if _, err := time.Parse(l, value); err == nil {
					return true
				}
			}
			return false
		},
		Error: newError(field, "must be a valid date", "validation.date", map[string]any{"layouts": layouts}),
	}
}
