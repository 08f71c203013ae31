package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/middlewares"
)

type note struct {
	Text string `json:"text"`
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	echo := route{path: "/", h: func(c internal.Context) error {
		var n note
		if _, err := c.BindJSON(&n); err != nil {
			if errors.Is(err, internal.ErrBodyTooLarge) {
				return internal.ErrPayloadTooLarge(middlewares.BodyLimitMessage)
			}
			return err
		}
		return c.JSON(http.StatusOK, n)
	}}
	app := newTestApp([]internal.Middleware{middlewares.BodyLimit(64)}, echo)

	t.Run("small body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("declared length over limit", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"`+strings.Repeat("x", 100)+`"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		require.Equal(t, middlewares.BodyLimitMessage, decodeBody(rec.Body.Bytes())["error"])
	})

	t.Run("unknown length over limit", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"`+strings.Repeat("x", 100)+`"}`))
		req.ContentLength = -1
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
