package internal_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksmdental/clinic/internal"
)

func TestApp_RunLifecycle(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/ping", func(c internal.Context) error {
			return c.JSON(http.StatusOK, map[string]bool{"ok": true})
		})
	})))

	ctx, cancel := context.WithCancel(context.Background())
	var started, stopped atomic.Bool

	done := make(chan error, 1)
	go func() {
		done <- app.Run("", internal.Listener(ln), internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error { started.Store(true); return nil }),
			internal.ShutdownHook(func(context.Context) error { stopped.Store(true); return nil }),
			internal.ShutdownTimeout(time.Second),
		)
	}()

	url := fmt.Sprintf("http://%s/ping", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "{\"ok\":true}\n"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, started.Load())
	assert.True(t, stopped.Load())
}

func TestApp_RunStartupHookFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("smtp config invalid")
	err := internal.New().Run("127.0.0.1:0",
		internal.StartupHook(func(context.Context) error { return boom }),
	)
	require.ErrorIs(t, err, boom)
}

func TestApp_RunShutdownHookError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	boom := errors.New("flush failed")
	err = internal.New().Run("", internal.Listener(ln), internal.WithContext(ctx),
		internal.ShutdownHook(func(context.Context) error { return boom }),
	)
	require.ErrorIs(t, err, boom)
}
