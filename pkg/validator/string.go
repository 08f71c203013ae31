package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// MinLenString fails when value has fewer than n characters.
// Length is counted in runes, not bytes.
func MinLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= n },
		Error: newError(field,
			fmt.Sprintf("must be at least %d characters", n),
			"validation.min_length", map[string]any{"min": n}),
	}
}

// MaxLenString fails when value has more than n characters.
func MaxLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= n },
		Error: newError(field,
			fmt.Sprintf("must be at most %d characters", n),
			"validation.max_length", map[string]any{"max": n}),
	}
}

// LenString fails unless value has exactly n characters.
func LenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) == n },
		Error: newError(field,
			fmt.Sprintf("must be exactly %d characters", n),
			"validation.exact_length", map[string]any{"length": n}),
	}
}

// OneOfString fails when value is not one of allowed.
func OneOfString(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: newError(field,
			"must be one of: "+strings.Join(allowed, ", "),
			"validation.one_of", map[string]any{"values": allowed}),
	}
}
