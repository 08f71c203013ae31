package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotStructPointer is returned when SanitizeStruct gets anything but a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: expected non-nil pointer to struct")

// transforms maps `sanitize` tag names to string transforms.
var transforms = map[string]func(string) string{
	"trim":       Trim,
	"nfc":        NormalizeUnicode,
	"singleline": SingleLine,
	"nocontrol":  StripControl,
	"strip_html": StripHTML,
	"html":       SanitizeHTML,
	"lower":      strings.ToLower,
}

// SanitizeStruct applies the transforms named in `sanitize` struct tags to
// exported string fields, in tag order. Nested structs and pointers to structs
// are walked. Unknown tag names return an error.
//
//	type Form struct {
//		Name  string `sanitize:"trim,nfc,singleline"`
//		Email string `sanitize:"trim,lower"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		switch {
		case fv.Kind() == reflect.Struct:
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.Struct:
			if err := sanitizeValue(fv.Elem()); err != nil {
				return err
			}
			continue
		}

		tag, ok := field.Tag.Lookup("sanitize")
		if !ok || tag == "" || tag == "-" || fv.Kind() != reflect.String {
			continue
		}

		s := fv.String()
		for name := range strings.SplitSeq(tag, ",") {
			name = strings.TrimSpace(name)
			fn, ok := transforms[name]
			if !ok {
				return fmt.Errorf("sanitizer: field %s: unknown transform %q", field.Name, name)
			}
			s = fn(s)
		}
		fv.SetString(s)
	}
	return nil
}
