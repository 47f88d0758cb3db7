package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"streamdex/internal/modkit/httpkit"
	phttp "streamdex/internal/platform/net/http"
	kit "streamdex/internal/platform/testkit"
)

func TestBuild_LaterOptionsWin(t *testing.T) {
	t.Parallel()

	type ports struct{ N int }
	b := Build(
		WithName("catalog"),
		WithPrefix("/catalog"),
		WithName("tags"),
		WithPorts(ports{N: 3}),
	)
	if b.Name != "tags" || b.Prefix != "/catalog" {
		t.Fatalf("built = %+v", b)
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 3 {
		t.Fatalf("ports = %#v", b.Ports)
	}
	if z := Build(); z.Name != "" || z.Prefix != "" || z.Ports != nil {
		t.Fatalf("zero build = %+v", z)
	}
}

func TestBase_MountsUnderPrefix(t *testing.T) {
	t.Parallel()

	base := NewBase(Build(WithName("catalog"), WithPrefix("catalog")), func(r httpkit.Router) {
		r.Get("/streams", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	})
	if base.Prefix() != "/catalog" {
		t.Fatalf("prefix = %q", base.Prefix())
	}

	mux := chi.NewRouter()
	base.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/streams", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestBase_NilRegisterMountsNothing(t *testing.T) {
	t.Parallel()

	mux := chi.NewRouter()
	NewBase(Build(WithName("meta"), WithPrefix("/meta")), nil).MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/health", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestBase_NamePanicsWhenUnset(t *testing.T) {
	t.Parallel()
	kit.MustPanic(t, func() { _ = NewBase(Build(), nil).Name() })
}
