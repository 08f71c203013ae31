package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("appointment", "admin")
	require.Len(t, tags, 2)
	assert.Equal(t, struct{}{}, tags["appointment"])
	assert.Empty(t, SimpleTags())
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, display, email, want string
	}{
		{"with name", "KSM Dental Care", "hello@ksm.example", "KSM Dental Care <hello@ksm.example>"},
		{"without name", "", "hello@ksm.example", "hello@ksm.example"},
		{"quoted name", `"KSM Dental"`, "hello@ksm.example", "KSM Dental <hello@ksm.example>"},
		{"angle brackets dropped", "Evil <x@y.z>", "hello@ksm.example", "Evil x@y.z <hello@ksm.example>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Recipient(tt.display, tt.email))
		})
	}
}

func TestEmail_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Email {
		return &Email{To: []string{"owner@ksm.example"}, Subject: "Hi", Text: "body"}
	}

	tests := []struct {
		name   string
		mutate func(e *Email)
		want   error
	}{
		{"valid", func(*Email) {}, nil},
		{"no recipient", func(e *Email) { e.To = nil }, ErrNoRecipient},
		{"blank recipient", func(e *Email) { e.To = []string{" "} }, ErrNoRecipient},
		{"no subject", func(e *Email) { e.Subject = "" }, ErrNoSubject},
		{"no body", func(e *Email) { e.Text = "" }, ErrNoContent},
		{"html only", func(e *Email) { e.Text = ""; e.HTML = "<p>x</p>" }, nil},
		{"subject injection", func(e *Email) { e.Subject = "Hi\r\nBcc: x@y.z" }, ErrInvalidHeader},
		{"header injection", func(e *Email) { e.Headers = map[string]string{"X-Ref": "a\nb"} }, ErrInvalidHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := valid()
			tt.mutate(e)
			err := e.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}

	var nilEmail *Email
	require.ErrorIs(t, nilEmail.Validate(), ErrNoRecipient)
}
