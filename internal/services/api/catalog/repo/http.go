package repo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"streamdex/internal/core/tabular"
	perr "streamdex/internal/platform/errors"
)

// HTTPDoer is the subset of http.Client the remote source needs
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// maxTableBytes bounds a remote table body
const maxTableBytes = 8 << 20

// HTTP fetches a published sheet export over http on every load
type HTTP struct {
	URL    string
	client HTTPDoer
}

// NewHTTP returns a remote TableSource; a nil client uses a 15s timeout default
func NewHTTP(url string, h HTTPDoer) *HTTP {
	if h == nil {
		h = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTP{URL: url, client: h}
}

// Load downloads and parses the table
func (s *HTTP) Load(ctx context.Context) (tabular.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return tabular.Table{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "tag table url %q", s.URL)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return tabular.Table{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "fetch tag table")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return tabular.Table{}, perr.NotFoundf("tag table %s not found", s.URL)
	case resp.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return tabular.Table{}, perr.Wrap(fmt.Errorf("status %d", resp.StatusCode), perr.ErrorCodeUnavailable, "fetch tag table")
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxTableBytes))
	if err != nil {
		return tabular.Table{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "read tag table body")
	}
	return tabular.Parse(string(b)), nil
}
