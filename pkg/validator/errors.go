package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single failed rule.
type ValidationError struct {
	TranslationValues map[string]any `json:"-"`
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"-"`
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// ValidationErrors is the collection returned by Apply.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Get returns every message recorded for the field, in rule order.
func (e ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, ve := range e {
		if ve.Field == field {
			msgs = append(msgs, ve.Message)
		}
	}
	return msgs
}

// Fields groups messages by field name.
func (e ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, ve := range e {
		out[ve.Field] = append(out[ve.Field], ve.Message)
	}
	return out
}

// Translate rewrites messages in place using fn.
// Errors without a translation key keep their message. A nil fn is a no-op.
func (e ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
