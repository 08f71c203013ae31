package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/internal/handlers"
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/pkg/counter"
	"github.com/ksmdental/clinic/pkg/places"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockNotifier) NotifyAppointment(ctx context.Context, a notify.Appointment) notify.AppointmentResult {
	return m.Called(ctx, a).Get(0).(notify.AppointmentResult)
}

func (m *mockNotifier) NotifyContact(ctx context.Context, c notify.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockNotifier) SendTest(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockPlaces struct {
	mock.Mock
}

func (m *mockPlaces) Reviews(ctx context.Context) ([]places.Review, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]places.Review)
	return reviews, args.Error(1)
}

func (m *mockPlaces) RatingCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context) (counter.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(counter.Snapshot), args.Error(1)
}

func (m *mockStore) Add(ctx context.Context, delta int64) (counter.Snapshot, error) {
	args := m.Called(ctx, delta)
	return args.Get(0).(counter.Snapshot), args.Error(1)
}

func (m *mockStore) Set(ctx context.Context, n int64) (counter.Snapshot, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(counter.Snapshot), args.Error(1)
}

var defaultConfig = handlers.Config{
	Env:              "production",
	YearsExperience:  18,
	ReviewsFallback:  20,
	PatientsFallback: 400,
}

func newApp(hs ...internal.Handler) http.Handler {
	log := slog.New(slog.DiscardHandler)
	return internal.New(
		internal.WithLogger(log, "test"),
		internal.WithHandlers(hs...),
		internal.WithErrorHandler(handlers.ErrorHandler(log)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
	)
}

func do(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(v))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}
