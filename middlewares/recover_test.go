package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := []struct {
		name  string
		value any
	}{
		{name: "string", value: "something went wrong"},
		{name: "error", value: errBoom},
		{name: "integer", value: 42},
		{name: "struct", value: struct{ Code int }{Code: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			err := middlewares.Recover()(func(internal.Context) error {
				panic(tt.value)
			})(ctx)

			pe, ok := middlewares.AsPanicError(err)
			require.True(t, ok)
			require.Equal(t, tt.value, pe.Value)
			require.NotEmpty(t, pe.Stack)
		})
	}
}

func TestRecover_NoPanic(t *testing.T) {
	t.Parallel()

	errHandler := errors.New("handler failed")
	ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	err := middlewares.Recover()(func(internal.Context) error { return errHandler })(ctx)
	require.ErrorIs(t, err, errHandler)
	require.False(t, middlewares.IsPanicError(err))

	err = middlewares.Recover()(func(internal.Context) error { return nil })(ctx)
	require.NoError(t, err)
}

func TestRecover_Options(t *testing.T) {
	t.Parallel()

	t.Run("disable stack", func(t *testing.T) {
		t.Parallel()
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())(func(internal.Context) error {
			panic("quiet")
		})(ctx)
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("stack size caps the trace", func(t *testing.T) {
		t.Parallel()
		ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		err := middlewares.Recover(middlewares.WithRecoverStackSize(64))(func(internal.Context) error {
			panic("small")
		})(ctx)
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})
}

func TestRecover_PanicNil(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	err := middlewares.Recover()(func(internal.Context) error {
		panic(nil)
	})(ctx)

	pe, ok := middlewares.AsPanicError(err)
	require.True(t, ok)
	var nilErr *runtime.PanicNilError
	require.ErrorAs(t, pe.Value.(error), &nilErr)
}

func TestRecover_ThroughApp(t *testing.T) {
	t.Parallel()

	app := newTestApp(
		[]internal.Middleware{middlewares.Recover(), middlewares.RequestID()},
		route{path: "/", h: func(internal.Context) error { panic("handler exploded") }},
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal server error", decodeBody(rec.Body.Bytes())["error"])
}
