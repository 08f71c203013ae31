package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal/handlers"
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/mailer"
)

func validAppointment() map[string]string {
	return map[string]string{
		"fullName":      "Asha Rao",
		"phone":         "+91 98765 43210",
		"email":         "asha@example.com",
		"service":       "Teeth Cleaning",
		"preferredDate": "2026-11-03",
		"preferredTime": "10:30 AM",
		"message":       "First visit",
	}
}

func newCounter(t *testing.T) *counter.FileStore {
	t.Helper()
	return counter.NewFileStore(filepath.Join(t.TempDir(), "stats.json"), 400)
}

func TestAppointment_Success(t *testing.T) {
	t.Parallel()

	n := new(mockNotifier)
	n.On("Configured").Return(true)
	n.On("NotifyAppointment", mock.Anything, mock.MatchedBy(func(a notify.Appointment) bool {
		return a.FullName == "Asha Rao" && a.Service == "Teeth Cleaning"
	})).Return(notify.AppointmentResult{AdminSent: true, UserSent: true})

	store := newCounter(t)
	app := newApp(handlers.NewAppointment(n, store, defaultConfig))

	rec, body := do(t, app, http.MethodPost, "/api/appointment", validAppointment())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["emailSent"])
	assert.Equal(t, true, body["adminEmailSent"])
	assert.Equal(t, true, body["userEmailSent"])
	assert.NotContains(t, body, "emailError")

	snap, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(401), snap.HappyPatients)
	n.AssertExpectations(t)
}

func TestAppointment_SanitisesInput(t *testing.T) {
	t.Parallel()

	n := new(mockNotifier)
	n.On("Configured").Return(true)
	n.On("NotifyAppointment", mock.Anything, mock.MatchedBy(func(a notify.Appointment) bool {
		return a.FullName == "Asha Rao" && a.Email == "asha@example.com"
	})).Return(notify.AppointmentResult{AdminSent: true})

	form := validAppointment()
	form["fullName"] = "  Asha Rao \n"
	form["email"] = " asha@example.com "
	app := newApp(handlers.NewAppointment(n, newCounter(t), defaultConfig))

	rec, body := do(t, app, http.MethodPost, "/api/appointment", form)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["emailSent"])
	assert.Equal(t, false, body["userEmailSent"])
	n.AssertExpectations(t)
}

func TestAppointment_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "short name", field: "fullName", value: "A"},
		{name: "bad email", field: "email", value: "not-an-email"},
		{name: "short phone", field: "phone", value: "123"},
		{name: "long phone", field: "phone", value: "12345678901234567890123456"},
		{name: "missing service", field: "service", value: ""},
		{name: "short date", field: "preferredDate", value: "x"},
		{name: "long time", field: "preferredTime", value: "sometime in the late afternoon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := new(mockNotifier)
			form := validAppointment()
			form[tt.field] = tt.value
			app := newApp(handlers.NewAppointment(n, newCounter(t), defaultConfig))

			rec, body := do(t, app, http.MethodPost, "/api/appointment", form)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, "Invalid form data.", body["error"])
			details, ok := body["details"].(map[string]any)
			require.True(t, ok)
			fields, ok := details["fieldErrors"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, fields, tt.field)
			n.AssertNotCalled(t, "NotifyAppointment", mock.Anything, mock.Anything)
		})
	}
}

func TestAppointment_MalformedJSON(t *testing.T) {
	t.Parallel()

	app := newApp(handlers.NewAppointment(new(mockNotifier), newCounter(t), defaultConfig))

	rec, body := do(t, app, http.MethodPost, "/api/appointment", `{"fullName":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid form data.", body["error"])
}

func TestAppointment_OwnerNotConfigured(t *testing.T) {
	t.Parallel()

	n := new(mockNotifier)
	n.On("Configured").Return(false)
	app := newApp(handlers.NewAppointment(n, newCounter(t), defaultConfig))

	rec, body := do(t, app, http.MethodPost, "/api/appointment", validAppointment())

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Server configuration error.", body["error"])
}

func TestAppointment_EmailFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		message string
		code    string
	}{
		{
			name:    "auth",
			err:     fmt.Errorf("smtp: %w", mailer.ErrAuth),
			message: "Email authentication failed. Please check your SMTP credentials.",
			code:    mailer.CodeAuth,
		},
		{
			name:    "connection",
			err:     fmt.Errorf("smtp: %w", mailer.ErrConnection),
			message: "Could not connect to email server. Please check your SMTP settings.",
			code:    mailer.CodeConnection,
		},
		{
			name:    "other",
			err:     errors.New("mailbox full"),
			message: "Could not send booking. Please try again in a moment.",
			code:    mailer.CodeSend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := new(mockNotifier)
			n.On("Configured").Return(true)
			n.On("NotifyAppointment", mock.Anything, mock.Anything).
				Return(notify.AppointmentResult{Err: tt.err})

			cfg := defaultConfig
			cfg.Env = "development"
			store := newCounter(t)
			app := newApp(handlers.NewAppointment(n, store, cfg))

			rec, body := do(t, app, http.MethodPost, "/api/appointment", validAppointment())

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, true, body["ok"])
			assert.Equal(t, false, body["emailSent"])
			assert.Equal(t, tt.message, body["emailError"])
			details, ok := body["details"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.code, details["code"])
			assert.Equal(t, tt.err.Error(), details["message"])

			snap, err := store.Load(t.Context())
			require.NoError(t, err)
			assert.Equal(t, int64(401), snap.HappyPatients)
		})
	}
}

func TestAppointment_NoDetailsInProduction(t *testing.T) {
	t.Parallel()

	n := new(mockNotifier)
	n.On("Configured").Return(true)
	n.On("NotifyAppointment", mock.Anything, mock.Anything).
		Return(notify.AppointmentResult{Err: mailer.ErrAuth, UserSent: true})
	app := newApp(handlers.NewAppointment(n, newCounter(t), defaultConfig))

	rec, body := do(t, app, http.MethodPost, "/api/appointment", validAppointment())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["emailSent"])
	assert.NotContains(t, body, "details")
}

func TestAppointment_CounterFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	n := new(mockNotifier)
	n.On("Configured").Return(true)
	n.On("NotifyAppointment", mock.Anything, mock.Anything).
		Return(notify.AppointmentResult{AdminSent: true, UserSent: true})
	store := new(mockStore)
	store.On("Add", mock.Anything, int64(1)).Return(counter.Snapshot{}, errors.New("disk full"))
	app := newApp(handlers.NewAppointment(n, store, defaultConfig))

	rec, body := do(t, app, http.MethodPost, "/api/appointment", validAppointment())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	store.AssertExpectations(t)
}

func TestAppointment_WrongMethod(t *testing.T) {
	t.Parallel()

	app := newApp(handlers.NewAppointment(new(mockNotifier), newCounter(t), defaultConfig))

	rec, body := do(t, app, http.MethodGet, "/api/appointment", nil)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", body["error"])
}
