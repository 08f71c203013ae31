package validator

import "fmt"

// Number is the set of numeric types accepted by numeric rules.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredNum fails when value is the zero value.
func RequiredNum[T Number](field string, value T) Rule {
	return Rule{
		Check: func() bool { return value != 0 },
		Error: newError(field, "is required", "validation.required", nil),
	}
}

// MinNum fails when value is less than minimum.
func MinNum[T Number](field string, value, minimum T) Rule {
	return Rule{
		Check: func() bool { return value >= minimum },
		Error: newError(field,
			fmt.Sprintf("must be at least %v", minimum),
			"validation.min", map[string]any{"min": minimum}),
	}
}

// MaxNum fails when value is greater than maximum.
func MaxNum[T Number](field string, value, maximum T) Rule {
	return Rule{
		Check: func() bool { return value <= maximum },
		Error: newError(field,
			fmt.Sprintf("must be at most %v", maximum),
			"validation.max", map[string]any{"max": maximum}),
	}
}
