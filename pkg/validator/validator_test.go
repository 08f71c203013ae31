package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("nil when every rule passes", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("name", "Asha"),
			validator.MinLenString("name", "Asha", 2),
			validator.MaxLenString("name", "Asha", 80),
		)
		require.NoError(t, err)
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("email", ""),
			validator.MinLenString("fullName", "A", 2),
			validator.EmailString("email", "nope"),
		)
		require.Error(t, err)
		require.True(t, validator.IsValidationError(err))

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 3)
		assert.Equal(t, []string{"is required", "must be a valid email address"}, ve.Get("email"))
		assert.True(t, ve.Has("fullName"))
		assert.False(t, ve.Has("phone"))
	})

	t.Run("rule without check is ignored", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validator.Apply(validator.Rule{}))
	})
}

func TestMinMaxLenString_CountsRunes(t *testing.T) {
	t.Parallel()

	// "दंत" is 3 runes and 9 bytes.
	require.NoError(t, validator.Apply(validator.MaxLenString("service", "दंत", 3)))
	require.Error(t, validator.Apply(validator.MinLenString("service", "दंत", 4)))
}

func TestWhen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "empty optional value is skipped", phone: "", wantErr: false},
		{name: "present value too short", phone: "123", wantErr: true},
		{name: "present value valid", phone: "+91 99999 99999", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(
				validator.When(tt.phone != "", validator.MinLenString("phone", tt.phone, 7)),
			)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmailString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		valid bool
	}{
		{"patient@example.com", true},
		{"a.b+c@clinic.co.in", true},
		{"patient@example", false},
		{"patient example@x.com", false},
		{"@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.EmailString("email", tt.value))
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func TestDateString(t *testing.T) {
	t.Parallel()

	require.NoError(t, validator.Apply(validator.DateString("date", "2025-03-14")))
	require.Error(t, validator.Apply(validator.DateString("date", "14/03/2025")))
	require.NoError(t, validator.Apply(validator.DateString("date", "14/03/2025", "02/01/2006")))
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.MinNum("port", 0, 1),
		validator.MaxNum("port", 70000, 65535),
		validator.RequiredNum("count", 0),
	)
	ve := validator.ExtractValidationErrors(err)
	require.Len(t, ve, 3)
	assert.Equal(t, "validation.min", ve[0].TranslationKey)
	assert.Equal(t, 1, ve[0].TranslationValues["min"])
	assert.Equal(t, "validation.max", ve[1].TranslationKey)
	assert.Equal(t, "validation.required", ve[2].TranslationKey)
}

func TestOneOfString(t *testing.T) {
	t.Parallel()

	require.NoError(t, validator.Apply(validator.OneOfString("backend", "file", "file", "redis")))
	err := validator.Apply(validator.OneOfString("backend", "sqlite", "file", "redis"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: file, redis")
}

func TestValidationErrors_Fields(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.MinLenString("message", "hey", 5),
		validator.MinLenString("fullName", "", 2),
		validator.RequiredString("fullName", ""),
	)
	fields := validator.ExtractValidationErrors(err).Fields()
	assert.Equal(t, map[string][]string{
		"message":  {"must be at least 5 characters"},
		"fullName": {"must be at least 2 characters", "is required"},
	}, fields)
}

func TestValidationErrors_Translate(t *testing.T) {
	t.Parallel()

	translations := map[string]string{
		"validation.required":   "The {{field}} field is required.",
		"validation.min_length": "The {{field}} must be at least {{min}} characters long.",
	}
	translate := func(key string, values map[string]any) string {
		msg, ok := translations[key]
		if !ok {
			return key
		}
		for k, v := range values {
			msg = strings.ReplaceAll(msg, "{{"+k+"}}", fmt.Sprint(v))
		}
		return msg
	}

	t.Run("rewrites messages in place", func(t *testing.T) {
		t.Parallel()
		ve := validator.ExtractValidationErrors(validator.Apply(
			validator.RequiredString("email", ""),
			validator.MinLenString("fullName", "A", 2),
		))
		ve.Translate(translate)

		assert.Equal(t, "The email field is required.", ve[0].Message)
		assert.Equal(t, "The fullName must be at least 2 characters long.", ve[1].Message)
		assert.Equal(t, "validation.min_length", ve[1].TranslationKey)
	})

	t.Run("nil fn is a no-op", func(t *testing.T) {
		t.Parallel()
		ve := validator.ValidationErrors{{Field: "email", Message: "is required", TranslationKey: "validation.required"}}
		ve.Translate(nil)
		assert.Equal(t, "is required", ve[0].Message)
	})

	t.Run("skips errors without a key", func(t *testing.T) {
		t.Parallel()
		ve := validator.ValidationErrors{{Field: "custom", Message: "custom message"}}
		ve.Translate(translate)
		assert.Equal(t, "custom message", ve[0].Message)
	})
}

func TestExtractValidationErrors_NonValidation(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validator.ExtractValidationErrors(assert.AnError))
	assert.False(t, validator.IsValidationError(nil))
}
