package module

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"streamdex/internal/core/stream"
	modkit "streamdex/internal/modkit"
	"streamdex/internal/modkit/module"
	phttp "streamdex/internal/platform/net/http"
	"streamdex/internal/services/api/catalog/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type fakeSource struct {
	videos []stream.Video
	err    error
}

func (f *fakeSource) Uploads(context.Context, string) (stream.Channel, []stream.Video, error) {
	return stream.Channel{ID: "UCtest", Title: "Test"}, f.videos, f.err
}

func (f *fakeSource) LookupVideos(context.Context, []string) ([]stream.Video, error) {
	return nil, nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*httptest.Server, Ports) {
	t.Helper()

	dir := t.TempDir()
	primary := filepath.Join(dir, "tags.csv")
	table := "stream_link,zatsu_start,horror,Visual Novel\n" +
		"https://www.youtube.com/watch?v=aaaaaaaaaaa,0:30:00,1,\n" +
		"https://youtu.be/bbbbbbbbbbb,,,1\n"
	if err := os.WriteFile(primary, []byte(table), 0o600); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{videos: []stream.Video{
		{ID: "aaaaaaaaaaa", Title: "Spooky", DurationISO: "PT1H", PublishedAt: at},
		{ID: "bbbbbbbbbbb", Title: "Reading", DurationISO: "PT2H", PublishedAt: at.Add(-time.Hour)},
	}}

	deps := modkit.Deps{Log: zerolog.Nop()}
	m := New(deps, Options{ChannelID: "UCtest", PrimaryLoc: primary}, modkit.WithPorts(Ports{Source: src}))

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/api/v1", func(api phttp.Router) { m.MountRoutes(api) })

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, module.MustPortsOf[Ports](m)
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req, err := stdhttp.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestModule_NameAndPrefix(t *testing.T) {
	m := New(modkit.Deps{Log: zerolog.Nop()}, Options{}, modkit.WithPorts(Ports{Source: &fakeSource{}}))
	if m.Name() != "catalog" {
		t.Fatalf("name = %q", m.Name())
	}
	p := module.MustPortsOf[Ports](m)
	if p.Service == nil || p.Source == nil {
		t.Fatalf("ports not populated: %+v", p)
	}
}

func TestModule_ListBeforeReloadIsUnavailable(t *testing.T) {
	srv, _ := setup(t)
	code, env := do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/streams", "")
	if code != stdhttp.StatusServiceUnavailable || env.Error != "Error loading data." {
		t.Fatalf("code=%d env=%+v", code, env)
	}
}

func TestModule_ReloadListAndCycle(t *testing.T) {
	srv, _ := setup(t)

	code, env := do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/reload", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("reload code=%d env=%+v", code, env)
	}
	var rl domain.Reload
	if err := json.Unmarshal(env.Data, &rl); err != nil || rl.Streams != 2 || rl.Tags != 2 {
		t.Fatalf("reload body: %+v %v", rl, err)
	}

	code, env = do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/streams?sort=longest", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("list code=%d env=%+v", code, env)
	}
	var lr domain.ListResult
	if err := json.Unmarshal(env.Data, &lr); err != nil {
		t.Fatal(err)
	}
	if lr.Count != 2 || lr.Streams[0].ID != "bbbbbbbbbbb" || lr.CountText != "Showing 2 streams" {
		t.Fatalf("list: %+v", lr)
	}

	code, env = do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/tags/Visual%20Novel/cycle", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("cycle code=%d env=%+v", code, env)
	}
	var tg domain.Tag
	if err := json.Unmarshal(env.Data, &tg); err != nil || tg.State != "include" || tg.Name != "Visual Novel" {
		t.Fatalf("cycle body: %+v %v", tg, err)
	}

	_, env = do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/streams", "")
	lr = domain.ListResult{}
	_ = json.Unmarshal(env.Data, &lr)
	if lr.Count != 1 || lr.Streams[0].ID != "bbbbbbbbbbb" {
		t.Fatalf("include filter: %+v", lr)
	}

	code, env = do(t, srv, stdhttp.MethodDelete, "/api/v1/catalog/tags", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("reset code=%d env=%+v", code, env)
	}
	var all []domain.Tag
	if err := json.Unmarshal(env.Data, &all); err != nil || len(all) != 2 || all[1].State != "unset" {
		t.Fatalf("reset body: %+v %v", all, err)
	}
}

func TestModule_SearchAndStream(t *testing.T) {
	srv, _ := setup(t)
	if code, env := do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/reload", ""); code != stdhttp.StatusOK {
		t.Fatalf("reload: %d %+v", code, env)
	}

	code, env := do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/streams/search", `{"mode":"postMarker","max_minutes":45}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("search code=%d env=%+v", code, env)
	}
	var lr domain.ListResult
	_ = json.Unmarshal(env.Data, &lr)
	if lr.Count != 1 || lr.Streams[0].ID != "aaaaaaaaaaa" {
		t.Fatalf("search: %+v", lr)
	}

	_, env = do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/streams?max_minutes=0", "")
	lr = domain.ListResult{}
	if err := json.Unmarshal(env.Data, &lr); err != nil || lr.Count != 0 {
		t.Fatalf("[0,0] window: %+v %v", lr, err)
	}

	_, env = do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/streams/search", `{"q":"  spooky  "}`)
	lr = domain.ListResult{}
	if err := json.Unmarshal(env.Data, &lr); err != nil || lr.Count != 1 || lr.Streams[0].ID != "aaaaaaaaaaa" {
		t.Fatalf("padded search: %+v %v", lr, err)
	}

	code, env = do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/streams/aaaaaaaaaaa", "")
	var st domain.Stream
	if code != stdhttp.StatusOK || json.Unmarshal(env.Data, &st) != nil || st.PostMarkerMinutes != 30 {
		t.Fatalf("stream: %d %+v", code, st)
	}

	code, _ = do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/streams/zzzzzzzzzzz", "")
	if code != stdhttp.StatusNotFound {
		t.Fatalf("missing stream code=%d", code)
	}
}

func TestModule_QueryValidation(t *testing.T) {
	srv, _ := setup(t)
	do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/reload", "")

	cases := []string{
		"/api/v1/catalog/streams?min_minutes=abc",
		"/api/v1/catalog/streams?sort=sideways",
		"/api/v1/catalog/streams?min_friends=-1",
	}
	for _, p := range cases {
		if code, env := do(t, srv, stdhttp.MethodGet, p, ""); code != stdhttp.StatusBadRequest {
			t.Fatalf("%s: code=%d env=%+v", p, code, env)
		}
	}
}

func TestModule_ChannelAndStats(t *testing.T) {
	srv, _ := setup(t)
	do(t, srv, stdhttp.MethodPost, "/api/v1/catalog/reload", "")

	_, env := do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/channel", "")
	var ch domain.Channel
	if err := json.Unmarshal(env.Data, &ch); err != nil || ch.ID != "UCtest" {
		t.Fatalf("channel: %+v %v", ch, err)
	}

	_, env = do(t, srv, stdhttp.MethodGet, "/api/v1/catalog/stats", "")
	var st domain.Stats
	if err := json.Unmarshal(env.Data, &st); err != nil || st.Streams != 2 || st.SliderMax != 120 {
		t.Fatalf("stats: %+v %v", st, err)
	}
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("YT_CHANNEL_ID", "UCenv")
	t.Setenv("TAGS_PRIMARY", "/tmp/tags.csv")
	t.Setenv("TAGS_SOURCE", "PG")
	t.Setenv("TAGS_SECONDARY_COUNT_COLUMNS", "Collab, guests")

	o := FromConfig(modkit.Deps{}.Cfg)
	if o.ChannelID != "UCenv" || o.PrimaryLoc != "/tmp/tags.csv" || o.Source != "pg" {
		t.Fatalf("options: %+v", o)
	}
	if got := o.secondarySchema().CountColumns; len(got) != 2 || got[1] != "guests" {
		t.Fatalf("count columns: %v", got)
	}

	merged := merge(o, Options{ChannelID: "UCover"})
	if merged.ChannelID != "UCover" || merged.PrimaryLoc != "/tmp/tags.csv" {
		t.Fatalf("merge: %+v", merged)
	}
}
