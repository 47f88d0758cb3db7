package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"streamdex/internal/platform/config"
	phttp "streamdex/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_Config(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:4100")

	hooked := false
	srv := phttp.NewServer(config.New(), func(*chi.Mux) { hooked = true })
	if !hooked {
		t.Fatalf("option not applied")
	}
	if srv.Addr() != "127.0.0.1:4100" {
		t.Fatalf("addr = %q", srv.Addr())
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Setenv("API_SHUTDOWN_GRACE", "2s")
	srv := phttp.NewServer(config.New())
	srv.Router().Get("/api/v1/meta/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/meta/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("got %d %q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestServer_RunBadAddr(t *testing.T) {
	t.Setenv("API_PORT", "not-an-addr")
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}
