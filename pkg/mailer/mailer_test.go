package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockVerifyingSender also implements Verifier.
type MockVerifyingSender struct {
	MockSender
}

func (m *MockVerifyingSender) Verify(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func mailerFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`<html><body>{{.Content}}</body></html>`)},
		"welcome.md": &fstest.MapFile{Data: []byte(`---
Subject: Welcome {{.Name}}
---
Hello {{b (esc .Name)}}!
`)},
		"plain.md": &fstest.MapFile{Data: []byte(`Hello world`)},
	}
}

func newTestMailer(s Sender) *Mailer {
	return New(s, NewRendererWithConfig(mailerFS(), RendererConfig{LayoutDir: "layouts"}), Config{
		DefaultLayout:   "base.html",
		FallbackSubject: "Notification",
		VerifyTimeout:   time.Second,
		SendTimeout:     time.Second,
	})
}

func TestMailer_Send_Success(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
		return e.To[0] == "asha@example.com" &&
			e.Subject == "Welcome Asha" &&
			e.ReplyTo == "owner@ksm.example" &&
			e.Headers["X-Entity-Ref-ID"] == "ref-1" &&
			e.Text == "Hello *Asha*!\n" &&
			len(e.HTML) > 0
	})).Return(nil)

	err := newTestMailer(sender).Send(context.Background(), SendParams{
		To:       "asha@example.com",
		Template: "welcome.md",
		Data:     map[string]string{"Name": "Asha"},
		ReplyTo:  "owner@ksm.example",
		Headers:  map[string]string{"X-Entity-Ref-ID": "ref-1"},
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_SubjectResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		subject  string
		want     string
	}{
		{"override wins", "welcome.md", "Custom {{.Name}}", "Custom Asha"},
		{"front matter", "welcome.md", "", "Welcome Asha"},
		{"fallback", "plain.md", "", "Notification"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			email, err := newTestMailer(&MockSender{}).Compose(SendParams{
				To:       "asha@example.com",
				Template: tt.template,
				Subject:  tt.subject,
				Data:     map[string]string{"Name": "Asha"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.Subject)
		})
	}
}

func TestMailer_Send_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no recipient", func(t *testing.T) {
		t.Parallel()
		sender := &MockSender{}
		err := newTestMailer(sender).Send(context.Background(), SendParams{Template: "welcome.md"})
		require.ErrorIs(t, err, ErrNoRecipient)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("render failure", func(t *testing.T) {
		t.Parallel()
		sender := &MockSender{}
		err := newTestMailer(sender).Send(context.Background(), SendParams{To: "a@b.co", Template: "missing.md"})
		require.ErrorIs(t, err, ErrRenderFailed)
		require.ErrorIs(t, err, ErrTemplateNotFound)
		sender.AssertNotCalled(t, "Send")
	})

	t.Run("sender failure keeps cause", func(t *testing.T) {
		t.Parallel()
		sender := &MockSender{}
		cause := errors.Join(ErrConnection, errors.New("dial tcp: refused"))
		sender.On("Send", mock.Anything, mock.Anything).Return(cause)

		err := newTestMailer(sender).Send(context.Background(), SendParams{To: "a@b.co", Template: "plain.md"})
		require.ErrorIs(t, err, ErrSendFailed)
		require.ErrorIs(t, err, ErrConnection)
		assert.Equal(t, CodeConnection, ErrorCode(err))
	})
}

func TestMailer_SendRaw_Timeout(t *testing.T) {
	t.Parallel()

	slow := SenderFunc(func(ctx context.Context, _ *Email) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	m := New(slow, NewRenderer(fstest.MapFS{}), Config{SendTimeout: 20 * time.Millisecond})

	start := time.Now()
	err := m.SendRaw(context.Background(), &Email{To: []string{"a@b.co"}, Subject: "x", Text: "y"})
	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
	assert.Equal(t, CodeTimeout, ErrorCode(err))
}

func TestMailer_SendRaw_Validates(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := newTestMailer(sender)
	require.ErrorIs(t, m.SendRaw(context.Background(), &Email{Subject: "x", Text: "y"}), ErrNoRecipient)
	require.ErrorIs(t, m.SendRaw(context.Background(), &Email{To: []string{"a@b.co"}, Text: "y"}), ErrNoSubject)
	require.ErrorIs(t, m.SendRaw(context.Background(), &Email{To: []string{"a@b.co"}, Subject: "x"}), ErrNoContent)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Verify(t *testing.T) {
	t.Parallel()

	t.Run("sender without verifier", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, newTestMailer(&MockSender{}).Verify(context.Background()))
	})

	t.Run("verifier success", func(t *testing.T) {
		t.Parallel()
		sender := &MockVerifyingSender{}
		sender.On("Verify", mock.Anything).Return(nil)
		require.NoError(t, newTestMailer(sender).Verify(context.Background()))
		sender.AssertExpectations(t)
	})

	t.Run("verifier auth failure", func(t *testing.T) {
		t.Parallel()
		sender := &MockVerifyingSender{}
		sender.On("Verify", mock.Anything).Return(ErrAuth)
		err := newTestMailer(sender).Verify(context.Background())
		require.ErrorIs(t, err, ErrVerifyFailed)
		assert.Equal(t, CodeAuth, ErrorCode(err))
	})
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ErrorCode(nil))
	assert.Equal(t, CodeConfig, ErrorCode(ErrNotConfigured))
	assert.Equal(t, CodeTimeout, ErrorCode(context.DeadlineExceeded))
	assert.Equal(t, CodeSend, ErrorCode(errors.New("boom")))
}
