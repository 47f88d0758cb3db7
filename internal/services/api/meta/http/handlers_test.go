package http

import (
	stdctx "context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "streamdex/internal/platform/net/http"
	kit "streamdex/internal/platform/testkit"
)

type pinger struct{ err error }

func (p pinger) Ping(stdctx.Context) error { return p.err }

type loader bool

func (l loader) Loaded() bool { return bool(l) }

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	env := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v (%s)", path, err, rec.Body.String())
	}
	return rec.Code
}

func TestReady(t *testing.T) {
	down := pinger{err: stdctx.DeadlineExceeded}
	tests := []struct {
		name   string
		deps   Deps
		code   int
		status string
	}{
		{"all ok", Deps{PG: pinger{}, Redis: pinger{}, Catalog: loader(true)}, stdhttp.StatusOK, "ok"},
		{"catalog pending", Deps{PG: pinger{}, Redis: pinger{}, Catalog: loader(false)}, stdhttp.StatusOK, "degraded"},
		{"stores skipped", Deps{Catalog: loader(true)}, stdhttp.StatusOK, "degraded"},
		{"store without ping", Deps{PG: struct{}{}, Redis: pinger{}, Catalog: loader(true)}, stdhttp.StatusOK, "degraded"},
		{"redis down", Deps{PG: pinger{}, Redis: down, Catalog: loader(false)}, stdhttp.StatusServiceUnavailable, "fail"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got ReadyResponse
			if code := get(t, tc.deps, "/ready", &got); code != tc.code {
				t.Fatalf("code = %d, want %d", code, tc.code)
			}
			if got.Status != tc.status || len(got.Checks) != 3 {
				t.Fatalf("ready = %+v", got)
			}
		})
	}
}

func TestRollup(t *testing.T) {
	t.Parallel()

	tests := []struct{ overall, check, want string }{
		{"ok", "ok", "ok"},
		{"ok", "pending", "degraded"},
		{"degraded", "ok", "degraded"},
		{"degraded", "fail", "fail"},
		{"fail", "ok", "fail"},
	}
	for _, tc := range tests {
		if got := rollup(tc.overall, tc.check); got != tc.want {
			t.Fatalf("rollup(%s, %s) = %s, want %s", tc.overall, tc.check, got, tc.want)
		}
	}
}

func TestService_Uptime(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	kit.Swap(t, &now, func() time.Time { return started.Add(90 * time.Second) })

	var got ServiceResponse
	get(t, Deps{ServiceName: "streamdex-api", StartedAt: started}, "/service", &got)
	if got.Name != "streamdex-api" || got.Uptime != 90 || got.Started != "2025-03-01T12:00:00Z" {
		t.Fatalf("service = %+v", got)
	}

	var h HealthResponse
	get(t, Deps{ServiceName: "streamdex-api"}, "/health", &h)
	if !h.OK || h.Now != "2025-03-01T12:01:30Z" {
		t.Fatalf("health = %+v", h)
	}
}
