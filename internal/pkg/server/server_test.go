package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewGracefulServer(t *testing.T) {
	e := echo.New()
	s := NewGracefulServer(e, logger.NewNop(), models.ServerConfig{Host: "127.0.0.1", Port: 5050, ReadTimeout: 5})

	assert.Equal(t, "127.0.0.1:5050", s.addr)
	assert.Equal(t, 30*time.Second, s.shutdownTimeout)
	assert.Equal(t, 5*time.Second, e.Server.ReadTimeout)
}

func TestGracefulServer_Run(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	port := freePort(t)
	s := NewGracefulServer(e, logger.NewNop(), models.ServerConfig{Host: "127.0.0.1", Port: port, ShutdownTimeout: 5})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestGracefulServer_RunPortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	e := echo.New()
	e.HideBanner = true
	s := NewGracefulServer(e, logger.NewNop(), models.ServerConfig{Host: "127.0.0.1", Port: l.Addr().(*net.TCPAddr).Port})

	err = s.Run(context.Background())
	assert.ErrorContains(t, err, "failed to start server")
}

func TestShutdownManager_Shutdown(t *testing.T) {
	sm := NewShutdownManager(logger.NewNop())

	var order []string
	sm.Register("postgres", func(context.Context) error { order = append(order, "postgres"); return nil })
	sm.Register("redis", func(context.Context) error { order = append(order, "redis"); return errors.New("already closed") })
	sm.Register("nats", func(context.Context) error { order = append(order, "nats"); return nil })

	err := sm.Shutdown(context.Background())

	assert.Equal(t, []string{"nats", "redis", "postgres"}, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis: already closed")
}

func TestShutdownManager_Empty(t *testing.T) {
	assert.NoError(t, NewShutdownManager(logger.NewNop()).Shutdown(context.Background()))
}

func TestShutdownManager_ConcurrentRegister(t *testing.T) {
	sm := NewShutdownManager(logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sm.Register("component", func(context.Context) error { return nil })
		}()
	}
	wg.Wait()

	assert.Len(t, sm.components, 50)
}
