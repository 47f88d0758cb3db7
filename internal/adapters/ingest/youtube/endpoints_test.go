package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"streamdex/internal/platform/cache"
	perr "streamdex/internal/platform/errors"
)

// fakeAPI serves a channel with a paged uploads playlist
type fakeAPI struct {
	mu          sync.Mutex
	uploads     []string
	live        map[string]string // id -> liveBroadcastContent
	plain       map[string]bool   // ordinary uploads without live details
	failPage    int               // 1-based playlist page that fails, 0 for none
	failVideos  int               // 1-based videos call that fails, 0 for none
	pageCalls   int
	videoCalls  int
	videoBatchs []int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "UCchan" {
			_, _ = w.Write([]byte(`{"items":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"UCchan","snippet":{"title":"Feileacan","thumbnails":{"default":{"url":"d.jpg"},"high":{"url":"h.jpg"}}},"contentDetails":{"relatedPlaylists":{"uploads":"UUchan"}}}]}`))
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.pageCalls++
		if f.failPage == f.pageCalls {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		if q.Get("maxResults") != "50" || q.Get("playlistId") != "UUchan" {
			t.Errorf("bad playlist query %v", q)
		}
		start := 0
		if tok := q.Get("pageToken"); tok != "" {
			fmt.Sscanf(tok, "p%d", &start)
		}
		end := min(start+PageSize, len(f.uploads))
		type item struct {
			Snippet struct {
				ResourceID struct {
					VideoID string `json:"videoId"`
				} `json:"resourceId"`
			} `json:"snippet"`
		}
		out := struct {
			NextPageToken string `json:"nextPageToken,omitempty"`
			Items         []item `json:"items"`
		}{}
		for _, id := range f.uploads[start:end] {
			var it item
			it.Snippet.ResourceID.VideoID = id
			out.Items = append(out.Items, it)
		}
		if end < len(f.uploads) {
			out.NextPageToken = fmt.Sprintf("p%d", end)
		}
		_ = json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.videoCalls++
		if f.failVideos == f.videoCalls {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		f.videoBatchs = append(f.videoBatchs, len(ids))
		var items []map[string]any
		for i, id := range ids {
			lbc := "none"
			if v, ok := f.live[id]; ok {
				lbc = v
			}
			it := map[string]any{
				"id": id,
				"snippet": map[string]any{
					"title":                "Stream " + id,
					"publishedAt":          time.Date(2024, 3, 1+i%28, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
					"channelTitle":         "Feileacan",
					"liveBroadcastContent": lbc,
					"thumbnails":           map[string]any{"high": map[string]any{"url": id + ".jpg"}},
				},
				"contentDetails": map[string]any{"duration": "PT1H30M0S"},
			}
			if !f.plain[id] {
				it["liveStreamingDetails"] = map[string]any{"actualStartTime": "2024-03-01T00:00:00Z"}
			}
			items = append(items, it)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	})
	return mux
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("vid%08d", i)
	}
	return out
}

func TestChannel(t *testing.T) {
	f := &fakeAPI{}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{})

	ch, err := c.Channel(context.Background(), "UCchan")
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	if ch.Title != "Feileacan" || ch.ThumbnailURL != "h.jpg" || ch.UploadsPlaylist != "UUchan" {
		t.Fatalf("channel = %+v", ch)
	}

	_, err = c.Channel(context.Background(), "UCmissing")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing channel err = %v", err)
	}
	if _, err := c.ResolveUploadsPlaylist(context.Background(), " "); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank channel err = %v", err)
	}
}

func TestPlaylistItems_PaginatesWithDelay(t *testing.T) {
	f := &fakeAPI{uploads: ids(120)}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, slept := newTestClient(srv, Options{})

	refs, err := c.ListPlaylist(context.Background(), "UUchan")
	if err != nil {
		t.Fatalf("ListPlaylist: %v", err)
	}
	if len(refs) != 120 || refs[0].VideoID != "vid00000000" || refs[119].VideoID != "vid00000119" {
		t.Fatalf("refs = %d", len(refs))
	}
	if f.pageCalls != 3 {
		t.Fatalf("page calls = %d want 3", f.pageCalls)
	}
	if len(*slept) != 2 || (*slept)[0] != defaultPageDelay {
		t.Fatalf("page delays = %v", *slept)
	}

	// a fresh walk starts over at page one
	if _, err := c.ListPlaylist(context.Background(), "UUchan"); err != nil {
		t.Fatalf("second walk: %v", err)
	}
	if f.pageCalls != 6 {
		t.Fatalf("page calls after restart = %d want 6", f.pageCalls)
	}
}

func TestPlaylistItems_EarlyBreakStopsFetching(t *testing.T) {
	f := &fakeAPI{uploads: ids(120)}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{})

	n := 0
	for _, err := range c.PlaylistItems(context.Background(), "UUchan") {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		n++
		if n == 10 {
			break
		}
	}
	if f.pageCalls != 1 {
		t.Fatalf("page calls = %d want 1", f.pageCalls)
	}
}

func TestPlaylistItems_PartialOnFailure(t *testing.T) {
	f := &fakeAPI{uploads: ids(120), failPage: 2}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{})

	refs, err := c.ListPlaylist(context.Background(), "UUchan")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(refs) != PageSize {
		t.Fatalf("partial refs = %d want %d", len(refs), PageSize)
	}
}

func TestFetchDetails_ChunksAndFilters(t *testing.T) {
	all := ids(75)
	f := &fakeAPI{
		live:  map[string]string{all[1]: "live", all[2]: "upcoming"},
		plain: map[string]bool{all[3]: true},
	}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, slept := newTestClient(srv, Options{})

	vids, err := c.FetchDetails(context.Background(), all)
	if err != nil {
		t.Fatalf("FetchDetails: %v", err)
	}
	if len(f.videoBatchs) != 2 || f.videoBatchs[0] != 50 || f.videoBatchs[1] != 25 {
		t.Fatalf("batches = %v", f.videoBatchs)
	}
	if len(*slept) != 1 {
		t.Fatalf("chunk delays = %v", *slept)
	}
	if len(vids) != 72 {
		t.Fatalf("kept %d want 72", len(vids))
	}
	v := vids[0]
	if v.ID != all[0] || v.DurationISO != "PT1H30M0S" || v.ThumbnailURL != all[0]+".jpg" || v.ChannelName != "Feileacan" {
		t.Fatalf("video = %+v", v)
	}
	if v.PublishedAt.IsZero() {
		t.Fatalf("publish time not parsed")
	}
	for _, v := range vids {
		if v.ID == all[1] || v.ID == all[2] || v.ID == all[3] {
			t.Fatalf("%s should have been filtered", v.ID)
		}
	}

	// lookups keep plain uploads but still drop live and upcoming items
	looked, err := c.LookupVideos(context.Background(), all[:5])
	if err != nil {
		t.Fatalf("LookupVideos: %v", err)
	}
	if len(looked) != 3 {
		t.Fatalf("lookup kept %d want 3", len(looked))
	}
}

func TestFetchDetails_PartialOnFailure(t *testing.T) {
	f := &fakeAPI{failVideos: 2}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{})

	vids, err := c.FetchDetails(context.Background(), ids(120))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(vids) != PageSize {
		t.Fatalf("partial videos = %d want %d", len(vids), PageSize)
	}
}

func TestUploads(t *testing.T) {
	f := &fakeAPI{uploads: ids(60), plain: map[string]bool{"vid00000059": true}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{})

	ch, vids, err := c.Uploads(context.Background(), "UCchan")
	if err != nil {
		t.Fatalf("Uploads: %v", err)
	}
	if ch.ID != "UCchan" || len(vids) != 59 {
		t.Fatalf("channel %+v videos %d", ch, len(vids))
	}

	_, _, err = c.Uploads(context.Background(), "UCmissing")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing channel err = %v", err)
	}
}

func TestPause_RespectsContext(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{})
	c.sleep = func(context.Context, time.Duration) error {
		t.Fatalf("slept on a done context")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.pause(ctx, time.Second); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestListPlaylist_FetchesUpstreamEveryCall(t *testing.T) {
	f := &fakeAPI{uploads: []string{"vid00000001"}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{Cache: cache.New()})

	first, err := c.ListPlaylist(context.Background(), "UUchan")
	if err != nil || len(first) != 1 {
		t.Fatalf("first = %v, %v", first, err)
	}
	f.mu.Lock()
	f.uploads = []string{"vid00000002", "vid00000001"}
	f.mu.Unlock()

	second, err := c.ListPlaylist(context.Background(), "UUchan")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(second) != 2 || second[0].VideoID != "vid00000002" {
		t.Fatalf("second = %v, listing was replayed", second)
	}
	if f.pageCalls != 2 {
		t.Fatalf("page calls = %d want 2", f.pageCalls)
	}
}

func TestFetchDetails_CachesSettledBatchesOnly(t *testing.T) {
	f := &fakeAPI{live: map[string]string{"vidlive0001": "live"}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	c, _ := newTestClient(srv, Options{Cache: cache.New()})
	ctx := context.Background()

	for range 2 {
		if v, err := c.FetchDetails(ctx, []string{"viddone0001"}); err != nil || len(v) != 1 {
			t.Fatalf("done = %v, %v", v, err)
		}
	}
	if f.videoCalls != 1 {
		t.Fatalf("settled batch calls = %d want 1", f.videoCalls)
	}

	if v, err := c.FetchDetails(ctx, []string{"vidlive0001"}); err != nil || len(v) != 0 {
		t.Fatalf("live = %v, %v", v, err)
	}
	f.mu.Lock()
	f.live["vidlive0001"] = "none"
	f.mu.Unlock()

	v, err := c.FetchDetails(ctx, []string{"vidlive0001"})
	if err != nil || len(v) != 1 {
		t.Fatalf("finished broadcast = %v, %v", v, err)
	}
	if f.videoCalls != 3 {
		t.Fatalf("video calls = %d want 3", f.videoCalls)
	}
}
