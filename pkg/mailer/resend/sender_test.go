package resend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/pkg/mailer"
)

func TestSender_NotConfigured(t *testing.T) {
	t.Parallel()

	err := New(Config{}).Send(context.Background(), &mailer.Email{To: []string{"a@b.co"}, Subject: "x", Text: "y"})
	require.ErrorIs(t, err, mailer.ErrNotConfigured)
}

func TestConvertTags(t *testing.T) {
	t.Parallel()

	tags := convertTags(mailer.Tags{"kind": "appointment admin", "urgent": struct{}{}})
	got := map[string]string{}
	for _, tag := range tags {
		got[tag.Name] = tag.Value
	}
	assert.Equal(t, map[string]string{"kind": "appointment_admin", "urgent": "true"}, got)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", tagValue(nil))
	assert.Equal(t, "false", tagValue(false))
	assert.Equal(t, "42", tagValue(42))
	assert.Equal(t, "1.5", tagValue(1.5))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mailer.CodeAuth, mailer.ErrorCode(classify(errors.New("[ERROR]: API key is invalid"))))
	assert.Equal(t, mailer.CodeTimeout, mailer.ErrorCode(classify(context.DeadlineExceeded)))
	assert.Equal(t, mailer.CodeSend, mailer.ErrorCode(classify(errors.New("validation_error"))))
}
