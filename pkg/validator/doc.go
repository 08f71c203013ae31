// Package validator provides rule-based validation with field-level error reporting.
//
// Rules are plain values built by constructor functions and evaluated together by
// Apply, which collects every failure instead of stopping at the first one:
//
//	err := validator.Apply(
//		validator.MinLenString("fullName", form.FullName, 2),
//		validator.MaxLenString("fullName", form.FullName, 80),
//		validator.EmailString("email", form.Email),
//		validator.When(form.Phone != "", validator.MinLenString("phone", form.Phone, 7)),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		details := ve.Fields() // map[field][]message
//	}
//
// Every error carries a translation key and values so messages can be localized
// later with ValidationErrors.Translate.
package validator
