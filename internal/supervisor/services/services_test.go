// KAPAS - Ethnic Wear Storefront Services
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ishubhamdubey/KAPAS

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*IndexService)(nil)
	_ suture.Service = (*SweepService)(nil)
)

// mockHTTPServer blocks in Serve until Shutdown, or fails at once when
// serveErr is set.
type mockHTTPServer struct {
	serveErr    error
	shutdownErr error
	started     chan net.Addr
	stop        chan struct{}
	once        sync.Once
	shutdowns   atomic.Int32
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{started: make(chan net.Addr, 1), stop: make(chan struct{})}
}

func (m *mockHTTPServer) Serve(l net.Listener) error {
	defer l.Close()
	m.started <- l.Addr()
	if m.serveErr != nil {
		return m.serveErr
	}
	<-m.stop
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdowns.Add(1)
	m.once.Do(func() { close(m.stop) })
	return m.shutdownErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	addr := <-server.started
	if tcp, ok := addr.(*net.TCPAddr); !ok || tcp.Port == 0 {
		t.Errorf("served on %v, want a bound TCP port", addr)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if server.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", server.shutdowns.Load())
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestHTTPServerService_AddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer taken.Close()

	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, taken.Addr().String(), 0, zerolog.Nop())

	if err := svc.Serve(context.Background()); err == nil {
		t.Error("Serve() on a taken address succeeded")
	}
	if len(server.started) != 0 {
		t.Error("server started without a listener")
	}
}

func TestHTTPServerService_ServeError(t *testing.T) {
	server := newMockHTTPServer()
	server.serveErr = errors.New("accept failed")
	svc := NewHTTPServerService(server, "127.0.0.1:0", 0, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, server.serveErr) {
		t.Errorf("Serve() = %v, want wrapped serve error", err)
	}
}

func TestHTTPServerService_ShutdownError(t *testing.T) {
	server := newMockHTTPServer()
	server.shutdownErr = errors.New("connections still open")
	svc := NewHTTPServerService(server, "127.0.0.1:0", time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()
	<-server.started
	cancel()

	if err := <-done; !errors.Is(err, server.shutdownErr) {
		t.Errorf("Serve() = %v, want shutdown error", err)
	}
}

// countingTrainer counts builds and fails while err is set.
type countingTrainer struct {
	builds atomic.Int32
	err    error
}

func (c *countingTrainer) Train(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("build without deadline")
	}
	c.builds.Add(1)
	return c.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestIndexService(t *testing.T) {
	t.Run("builds on startup and on schedule", func(t *testing.T) {
		trainer := &countingTrainer{}
		svc := NewIndexService(trainer, IndexServiceConfig{
			BuildOnStartup:  true,
			RebuildInterval: 20 * time.Millisecond,
		}, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		waitFor(t, func() bool { return trainer.builds.Load() >= 3 })
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	})

	t.Run("failed builds keep the service running", func(t *testing.T) {
		trainer := &countingTrainer{err: errors.New("catalog down")}
		svc := NewIndexService(trainer, IndexServiceConfig{
			BuildOnStartup:  true,
			RebuildInterval: 10 * time.Millisecond,
		}, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		waitFor(t, func() bool { return trainer.builds.Load() >= 2 })
		cancel()
		<-done
	})

	t.Run("no interval waits for cancel", func(t *testing.T) {
		trainer := &countingTrainer{}
		svc := NewIndexService(trainer, IndexServiceConfig{}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want deadline exceeded", err)
		}
		if trainer.builds.Load() != 0 {
			t.Errorf("built %d times without startup build or interval", trainer.builds.Load())
		}
	})
}

type countingSweeper struct {
	sweeps atomic.Int32
}

func (c *countingSweeper) Sweep() int { c.sweeps.Add(1); return 1 }
func (c *countingSweeper) Len() int   { return 0 }

func TestSweepService(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewSweepService(sweeper, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	waitFor(t, func() bool { return sweeper.sweeps.Load() >= 2 })
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if svc.String() != "cart-sweep" {
		t.Errorf("String() = %q", svc.String())
	}
}
