package validator

// Rule pairs a check with the error reported when the check fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates all rules and returns ValidationErrors with every failure,
// or nil when all rules pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check == nil || r.Check() {
			continue
		}
		errs = append(errs, r.Error)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// When makes rule conditional: it only runs when cond is true.
// Use it for optional fields that are validated once present.
func When(cond bool, rule Rule) Rule {
	if cond {
		return rule
	}
	return Rule{Check: func() bool { return true }, Error: rule.Error}
}

func newError(field, message, key string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
